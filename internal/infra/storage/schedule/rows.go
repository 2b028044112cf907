package schedule

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// row строка таблицы store_working_hours: режим и nullable-границы
type row struct {
	Weekday        int16
	Enabled        bool
	Mode           string
	StartTime      sql.NullString
	EndTime        sql.NullString
	MorningStart   sql.NullString
	MorningEnd     sql.NullString
	AfternoonStart sql.NullString
	AfternoonEnd   sql.NullString
}

// toWeeklySchedule собирает неделю из строк. Включенный день с несогласованной
// строкой становится закрытым, остальные дни не затрагиваются.
func toWeeklySchedule(storeID int64, rows []row, onInvalid func(err error)) domain.WeeklySchedule {
	schedule := domain.WeeklySchedule{StoreID: storeID}
	for _, rw := range rows {
		day, err := rw.toDaySchedule()
		if err != nil {
			onInvalid(err)
			if !validWeekday(rw.Weekday) {
				continue
			}
			day = domain.DaySchedule{Weekday: time.Weekday(rw.Weekday)}
		}
		schedule.Days = append(schedule.Days, day)
	}
	return schedule
}

func validWeekday(w int16) bool {
	return w >= int16(time.Sunday) && w <= int16(time.Saturday)
}

// toDaySchedule превращает строку в DaySchedule с типизированными часами.
// Включенный день с несогласованными колонками отклоняется; у выключенного
// дня часы просто не заполняются.
func (r row) toDaySchedule() (domain.DaySchedule, error) {
	if !validWeekday(r.Weekday) {
		return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d", ErrInconsistentRow, r.Weekday)
	}

	day := domain.DaySchedule{
		Weekday: time.Weekday(r.Weekday),
		Enabled: r.Enabled,
	}

	hours, err := r.workingHours()
	if err != nil {
		if r.Enabled {
			return domain.DaySchedule{}, fmt.Errorf("%w: weekday %d: %v", ErrInconsistentRow, r.Weekday, err)
		}
		return day, nil
	}

	day.Hours = hours
	return day, nil
}

func (r row) workingHours() (domain.WorkingHours, error) {
	switch domain.ScheduleMode(r.Mode) {
	case domain.ModeContinuous:
		bounds, err := parseAll(r.StartTime, r.EndTime)
		if err != nil {
			return nil, err
		}
		return domain.NewContinuousHours(bounds[0], bounds[1])
	case domain.ModeSplit:
		bounds, err := parseAll(r.MorningStart, r.MorningEnd, r.AfternoonStart, r.AfternoonEnd)
		if err != nil {
			return nil, err
		}
		return domain.NewSplitHours(bounds[0], bounds[1], bounds[2], bounds[3])
	default:
		return nil, fmt.Errorf("unknown mode %q", r.Mode)
	}
}

func parseAll(values ...sql.NullString) ([]types.TimeString, error) {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		if !v.Valid {
			return nil, fmt.Errorf("bound %d is null", i+1)
		}
		ts, err := types.NewTimeStringFromString(v.String)
		if err != nil {
			return nil, err
		}
		result[i] = ts
	}
	return result, nil
}
