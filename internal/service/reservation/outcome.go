package reservation

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Исходы резервирования для метрик
const (
	OutcomeReserved    = "reserved"
	OutcomeConflict    = "conflict"
	OutcomeClosed      = "closed"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// Outcome переводит результат Reserve/Check в label метрики
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeReserved
	case errors.Is(err, domain.ErrCapacityExceeded), errors.Is(err, domain.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrScheduleClosed):
		return OutcomeClosed
	case errors.Is(err, domain.ErrServiceUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, domain.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
