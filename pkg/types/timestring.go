package types

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

const timeLayout = "15:04"

// MinutesInDay количество минут в сутках
const MinutesInDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString время суток в формате "HH:MM" с точностью до минуты
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" (допускается "HH:MM:SS" из БД)
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == len("15:04:05") {
		s = s[:len(timeLayout)]
	}
	if len(s) != len(timeLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesInDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil || len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи.
// Для некорректного значения возвращает -1.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes прибавляет минуты. Результат должен остаться в пределах суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// IsBefore проверяет, что t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter проверяет, что t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal проверяет равенство времени
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// OnDate возвращает момент времени t в указанную дату и часовом поясе
func (t TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}
