package create_appointment

import (
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"` // "2025-10-15"
	Time          string  `json:"time"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"` // E.164
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	StoreID         int64   `json:"storeId"`
	ServiceID       int64   `json:"serviceId"`
	PublicToken     string  `json:"publicToken"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	PriceSnapshot   float64 `json:"priceSnapshot"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type fieldError struct {
	message string
}

func (e *fieldError) Error() string { return e.message }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(storeID int64, idempotencyKey string) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, &fieldError{message: handlers.MsgInvalidDate}
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, &fieldError{message: handlers.MsgInvalidTime}
	}

	return &createAppointment.Request{
		StoreID:        storeID,
		ServiceID:      r.ServiceID,
		Date:           date,
		Time:           at,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		StoreID:         resp.StoreID,
		ServiceID:       resp.ServiceID,
		PublicToken:     resp.PublicToken,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		PriceSnapshot:   resp.PriceSnapshot,
		Notes:           resp.Notes,
		CreatedAt:       handlers.FormatTime(resp.CreatedAt),
		UpdatedAt:       handlers.FormatTime(resp.UpdatedAt),
	}
}
