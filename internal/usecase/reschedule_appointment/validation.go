package reschedule_appointment

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.ByToken() {
		if req.AppointmentID <= 0 {
			return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
		}
		if req.UserID <= 0 {
			return fmt.Errorf("%w: userID is required", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	return nil
}
