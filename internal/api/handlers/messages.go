package handlers

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
)

const (
	MsgInvalidRequestBody = "некорректное тело запроса"
	MsgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	MsgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	MsgMissingUserID      = "отсутствует ID пользователя"
	MsgForbidden          = "доступ запрещен"
)

// ReservationMessage сообщение для отказа в резервировании слота
func ReservationMessage(err error) string {
	switch {
	case errors.Is(err, reservation.ErrStoreNotFound):
		return "магазин не найден"
	case errors.Is(err, reservation.ErrServiceNotFound):
		return "услуга не найдена"
	case errors.Is(err, reservation.ErrDateInPast):
		return "выбранное время уже прошло"
	case errors.Is(err, reservation.ErrTooLateToBook):
		return "слишком поздно для записи на этот слот"
	case errors.Is(err, reservation.ErrDateTooFarInFuture):
		return "дата записи слишком далеко в будущем"
	case errors.Is(err, reservation.ErrServiceUnavailable):
		return "услуга недоступна в выбранную дату"
	case errors.Is(err, reservation.ErrScheduleClosed):
		return "магазин закрыт в выбранное время"
	case errors.Is(err, reservation.ErrOffGrid):
		return "время не совпадает с началом слота"
	case errors.Is(err, reservation.ErrSlotConflict):
		return "выбранный слот уже занят"
	default:
		return "некорректный запрос"
	}
}
