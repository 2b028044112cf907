package reschedule_appointment

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("reschedule_appointment: invalid input data", domain.ErrValidation)

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = domain.Mark("reschedule_appointment: appointment not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владеет магазином записи
	ErrAccessDenied = domain.Mark("reschedule_appointment: access denied", domain.ErrAccessDenied)

	// ErrNotActive возвращается при попытке перенести отмененную запись
	ErrNotActive = domain.Mark("reschedule_appointment: appointment is cancelled", domain.ErrConflict)

	// ErrSlotConflict возвращается, когда параллельная запись заняла слот
	ErrSlotConflict = domain.Mark("reschedule_appointment: slot was taken concurrently", domain.ErrCapacityExceeded)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
