package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	StoreID        int64
	ServiceID      int64
	Date           time.Time        // Дата записи (без времени)
	Time           types.TimeString // Время начала слота (например, "10:00")
	CustomerName   string
	CustomerPhone  string  // E.164
	Notes          *string // Дополнительные заметки (опционально)
	IdempotencyKey string  // Значение заголовка Idempotency-Key (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	StoreID         int64
	ServiceID       int64
	PublicToken     string
	CustomerName    string
	CustomerPhone   string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName   string
	PriceSnapshot float64
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Replayed true, если запись уже была создана запросом с тем же Idempotency-Key
	Replayed bool
}

func newResponse(a *domain.Appointment, replayed bool) *Response {
	return &Response{
		ID:              a.ID,
		StoreID:         a.StoreID,
		ServiceID:       a.ServiceID,
		PublicToken:     a.PublicToken,
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		PriceSnapshot:   a.PriceSnapshot,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Replayed:        replayed,
	}
}
