package reservation

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("reservation: invalid input data", domain.ErrValidation)

	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = domain.Mark("reservation: store not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в магазине
	ErrServiceNotFound = domain.Mark("reservation: service not found", domain.ErrNotFound)

	// ErrDateInPast возвращается, когда дата или время уже прошли в часовом поясе магазина
	ErrDateInPast = domain.Mark("reservation: date is in the past", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда нарушено минимальное время до записи
	ErrTooLateToBook = domain.Mark("reservation: too late to book this slot", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = domain.Mark("reservation: date is too far in the future", domain.ErrValidation)

	// ErrServiceUnavailable возвращается, когда услуга не оказывается в эту дату
	ErrServiceUnavailable = domain.Mark("reservation: service is not available on this date", domain.ErrServiceUnavailable)

	// ErrScheduleClosed возвращается, когда время не попадает ни в один рабочий интервал
	ErrScheduleClosed = domain.Mark("reservation: store is closed at this time", domain.ErrScheduleClosed)

	// ErrOffGrid возвращается, когда время внутри рабочего интервала, но не совпадает с началом слота
	ErrOffGrid = domain.Mark("reservation: time is not aligned to the service slots", domain.ErrValidation)

	// ErrSlotConflict возвращается, когда слот заполнен на момент записи
	ErrSlotConflict = domain.Mark("reservation: slot is no longer available", domain.ErrCapacityExceeded)

	// ErrNotInTransaction возвращается, когда Reserve вызван вне транзакции
	ErrNotInTransaction = errors.New("reservation: reserve requires a transaction")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("reservation: internal error")
)
