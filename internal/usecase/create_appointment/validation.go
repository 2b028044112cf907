package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Дата, время и слот проверяются в reservation.Resolver.
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
