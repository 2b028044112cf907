package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек магазина
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                  int64
	Timezone                *string
	NotificationPhone       *string // пустая строка отключает уведомления магазину
	AllowMultiple           *bool
	MaxPerSlot              *int
	OccupancyMode           *string
	AdvanceBookingDays      *int // 0 = без ограничений
	MinBookingNoticeMinutes *int
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.Timezone == nil && r.NotificationPhone == nil && r.AllowMultiple == nil &&
		r.MaxPerSlot == nil && r.OccupancyMode == nil && r.AdvanceBookingDays == nil &&
		r.MinBookingNoticeMinutes == nil
}

// Apply переносит переданные поля на магазин
func (r *UpdateSettingsRequest) Apply(s *domain.Store) {
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
	if r.NotificationPhone != nil {
		if *r.NotificationPhone == "" {
			s.NotificationPhone = nil
		} else {
			phone := *r.NotificationPhone
			s.NotificationPhone = &phone
		}
	}
	if r.AllowMultiple != nil {
		s.Capacity.AllowMultiple = *r.AllowMultiple
	}
	if r.MaxPerSlot != nil {
		s.Capacity.MaxPerSlot = *r.MaxPerSlot
	}
	if r.OccupancyMode != nil {
		s.Capacity.OccupancyMode = domain.OccupancyMode(*r.OccupancyMode)
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// Response модели

// SettingsResponse настройки записи магазина
type SettingsResponse struct {
	StoreID                 int64     `json:"storeId"`
	Timezone                string    `json:"timezone"`
	NotificationPhone       *string   `json:"notificationPhone,omitempty"`
	AllowMultiple           bool      `json:"allowMultiple"`
	MaxPerSlot              int       `json:"maxPerSlot"`
	EffectiveCapacity       int       `json:"effectiveCapacity"`
	OccupancyMode           string    `json:"occupancyMode"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"` // 0 = без ограничений
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// FromDomainStore конвертирует магазин в DTO
func FromDomainStore(s *domain.Store) *SettingsResponse {
	if s == nil {
		return nil
	}

	timezone := s.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return &SettingsResponse{
		StoreID:                 s.ID,
		Timezone:                timezone,
		NotificationPhone:       s.NotificationPhone,
		AllowMultiple:           s.Capacity.AllowMultiple,
		MaxPerSlot:              s.Capacity.MaxPerSlot,
		EffectiveCapacity:       s.Capacity.EffectiveCap(),
		OccupancyMode:           string(s.Capacity.Mode()),
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		UpdatedAt:               s.UpdatedAt,
	}
}
