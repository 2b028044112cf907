package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи.
// Запись ищется по PublicToken (клиент) или по AppointmentID от имени владельца магазина.
type Request struct {
	AppointmentID int64
	UserID        int64 // Владелец магазина, обязателен при поиске по AppointmentID
	PublicToken   string
	Date          time.Time        // Новая дата (без времени)
	Time          types.TimeString // Новое время начала
}

// ByToken сообщает, что запрос пришел от клиента по ссылке
func (r *Request) ByToken() bool {
	return r.PublicToken != ""
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64
	StoreID         int64
	ServiceID       int64
	PublicToken     string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Status          string
	PreviousDate    time.Time
	PreviousTime    types.TimeString
	ServiceName     string
}

func newResponse(a *domain.Appointment, prevDate time.Time, prevTime types.TimeString) *Response {
	return &Response{
		ID:              a.ID,
		StoreID:         a.StoreID,
		ServiceID:       a.ServiceID,
		PublicToken:     a.PublicToken,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		PreviousDate:    prevDate,
		PreviousTime:    prevTime,
		ServiceName:     a.ServiceName,
	}
}
