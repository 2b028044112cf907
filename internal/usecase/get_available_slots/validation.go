package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	if to.Before(from) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	if days := daysBetween(from, to) + 1; days > domain.MaxRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxRangeDays)
	}

	if req.ExcludeAppointmentID != nil && *req.ExcludeAppointmentID <= 0 {
		return fmt.Errorf("%w: excludeAppointmentID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDates проверяет диапазон относительно сегодняшнего дня магазина
func validateDates(from, to, today time.Time, advanceBookingDays int) error {
	if from.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, from.Format(domain.DateFormat), today.Format(domain.DateFormat))
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if to.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// daysBetween количество полных дней между двумя датами без времени
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
