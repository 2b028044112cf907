package update_store_settings

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	Timezone                *string `json:"timezone,omitempty"`
	NotificationPhone       *string `json:"notificationPhone,omitempty"` // "" отключает уведомления
	AllowMultiple           *bool   `json:"allowMultiple,omitempty"`
	MaxPerSlot              *int    `json:"maxPerSlot,omitempty"`
	OccupancyMode           *string `json:"occupancyMode,omitempty"` // exact_start | overlap
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  userID,
		Timezone:                r.Timezone,
		NotificationPhone:       r.NotificationPhone,
		AllowMultiple:           r.AllowMultiple,
		MaxPerSlot:              r.MaxPerSlot,
		OccupancyMode:           r.OccupancyMode,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
