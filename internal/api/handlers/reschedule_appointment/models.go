package reschedule_appointment

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date"` // "2025-10-15"
	Time string `json:"time"` // "10:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              int64  `json:"id"`
	StoreID         int64  `json:"storeId"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PreviousDate    string `json:"previousDate"`
	PreviousTime    string `json:"previousTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:              resp.ID,
		StoreID:         resp.StoreID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PreviousDate:    resp.PreviousDate.Format(domain.DateFormat),
		PreviousTime:    resp.PreviousTime.String(),
	}
}
