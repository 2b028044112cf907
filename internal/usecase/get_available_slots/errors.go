package get_available_slots

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = domain.Mark("get_available_slots: store not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = domain.Mark("get_available_slots: service not found", domain.ErrNotFound)

	// ErrDateInPast возвращается, когда запрошенный диапазон начинается в прошлом
	ErrDateInPast = domain.Mark("get_available_slots: date is in the past", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = domain.Mark("get_available_slots: date is too far in the future", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("get_available_slots: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
