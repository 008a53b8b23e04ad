package domain

import "time"

// UnitSettings holds per-unit booking parameters.
// A unit without a stored row uses DefaultUnitSettings.
type UnitSettings struct {
	UnitID                  int64
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	UpdatedAt               time.Time
}

// DefaultUnitSettings returns settings used when nothing is configured for the unit
func DefaultUnitSettings(unitID int64) *UnitSettings {
	return &UnitSettings{
		UnitID:                  unitID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// IsValidGranularity returns true if g is one of the supported grid steps
func IsValidGranularity(g int) bool {
	for _, allowed := range AllowedGranularities {
		if g == allowed {
			return true
		}
	}
	return false
}

// Normalize replaces out-of-range values with defaults
func (s *UnitSettings) Normalize() {
	if !IsValidGranularity(s.SlotGranularityMinutes) {
		s.SlotGranularityMinutes = DefaultSlotGranularityMinutes
	}
	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > MaxBookingNoticeMinutes {
		s.MinBookingNoticeMinutes = DefaultMinBookingNoticeMinutes
	}
}

// Professional is a staff member who performs services at a unit
type Professional struct {
	ID       int64
	UnitID   int64
	Name     string
	IsActive bool
}

// Service is a bookable offering of a unit
type Service struct {
	ID              int64
	UnitID          int64
	Name            string
	DurationMinutes *int
	Price           *float64
	IsActive        bool
}

// HasValidDuration returns true if the duration is set and positive
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes != nil && *s.DurationMinutes > 0
}
