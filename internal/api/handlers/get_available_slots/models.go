package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StoreID         int64         `json:"storeId"`
	ServiceID       int64         `json:"serviceId"`
	DurationMinutes int           `json:"durationMinutes"`
	TotalSlots      int           `json:"totalSlots"`
	Days            []DayResponse `json:"days"`
}

// DayResponse слоты одного дня
type DayResponse struct {
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		slots := make([]SlotResponse, 0, len(d.Slots))
		for _, s := range d.Slots {
			slots = append(slots, SlotResponse{
				StartTime:       s.StartTime.String(),
				DurationMinutes: s.DurationMinutes,
				AvailableSpots:  s.AvailableSpots,
				TotalSpots:      s.TotalSpots,
			})
		}
		days = append(days, DayResponse{Date: d.Date.Format(domain.DateFormat), Slots: slots})
	}

	return &AvailableSlotsResponse{
		StoreID:         resp.StoreID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		TotalSlots:      resp.TotalSlots(),
		Days:            days,
	}
}
