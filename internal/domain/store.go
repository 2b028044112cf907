package domain

import "time"

// OccupancyMode decides which appointments count against a slot
type OccupancyMode string

const (
	// OccupancyExactStart counts appointments starting exactly at the slot start
	OccupancyExactStart OccupancyMode = "exact_start"
	// OccupancyOverlap counts appointments whose interval overlaps the slot
	OccupancyOverlap OccupancyMode = "overlap"
)

// IsValid reports whether m is a known mode
func (m OccupancyMode) IsValid() bool {
	return m == OccupancyExactStart || m == OccupancyOverlap
}

// CapacityConfig per-store overbooking settings
type CapacityConfig struct {
	AllowMultiple bool
	MaxPerSlot    int
	OccupancyMode OccupancyMode
}

// DefaultCapacity one appointment per slot, exact start matching
func DefaultCapacity() CapacityConfig {
	return CapacityConfig{
		AllowMultiple: false,
		MaxPerSlot:    DefaultMaxPerSlot,
		OccupancyMode: OccupancyExactStart,
	}
}

// EffectiveCap returns the number of appointments a slot may hold.
// Without AllowMultiple the cap is 1 whatever MaxPerSlot says.
func (c CapacityConfig) EffectiveCap() int {
	if !c.AllowMultiple {
		return 1
	}
	if c.MaxPerSlot < 1 {
		return 1
	}
	return c.MaxPerSlot
}

// Mode returns the occupancy mode, defaulting to exact start
func (c CapacityConfig) Mode() OccupancyMode {
	if c.OccupancyMode == "" {
		return OccupancyExactStart
	}
	return c.OccupancyMode
}

// Store is a tenant with its booking settings
type Store struct {
	ID                      int64
	OwnerUserID             int64
	Name                    string
	Timezone                string // IANA name
	NotificationPhone       *string
	Capacity                CapacityConfig
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Location returns the store's time zone. Timezone is validated on write;
// an unknown name falls back to UTC.
func (s *Store) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *Store) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// IsOwnedBy reports whether userID owns the store
func (s *Store) IsOwnedBy(userID int64) bool {
	return s.OwnerUserID == userID
}
