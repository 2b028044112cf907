package appointments

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = domain.Mark("appointments: appointment not found", domain.ErrNotFound)

	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = domain.Mark("appointments: store not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владеет магазином
	ErrAccessDenied = domain.Mark("appointments: access denied", domain.ErrAccessDenied)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = domain.Mark("appointments: status transition is not allowed", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("appointments: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
