package check_slot

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
)

// CheckSlotResponse результат проверки слота.
// При отказе Available=false, а Reason и Code объясняют причину.
type CheckSlotResponse struct {
	Available       bool   `json:"available"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots,omitempty"`
	Code            string `json:"code,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

func fromReservation(r *reservation.Reservation) *CheckSlotResponse {
	return &CheckSlotResponse{
		Available:       true,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.Time.String(),
		DurationMinutes: r.DurationMinutes,
		AvailableSpots:  r.AvailableSpots(),
		TotalSpots:      r.TotalSpots,
	}
}
