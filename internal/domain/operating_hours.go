package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Period is a named part of the working day
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// AllPeriods in chronological order
var AllPeriods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// IsValid returns true for a known period
func (p Period) IsValid() bool {
	return p == PeriodMorning || p == PeriodAfternoon || p == PeriodEvening
}

// OperatingPeriod is the opening window of one period on one weekday.
// When IsOpen is false the times are ignored.
type OperatingPeriod struct {
	UnitID    int64
	Weekday   time.Weekday
	Period    Period
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// Bounds returns the opening window. ok is false when the period is closed,
// a time is missing, or open is not before close.
func (p *OperatingPeriod) Bounds() (open, closeTime types.TimeString, ok bool) {
	if !p.IsOpen || p.OpenTime == nil || p.CloseTime == nil {
		return types.TimeString{}, types.TimeString{}, false
	}
	if p.OpenTime.IsZero() || p.CloseTime.IsZero() || !p.OpenTime.IsBefore(*p.CloseTime) {
		return types.TimeString{}, types.TimeString{}, false
	}
	return *p.OpenTime, *p.CloseTime, true
}

// PeriodFlags holds one boolean per period
type PeriodFlags struct {
	Morning   bool
	Afternoon bool
	Evening   bool
}

// Get returns the flag of the period
func (f PeriodFlags) Get(p Period) bool {
	switch p {
	case PeriodMorning:
		return f.Morning
	case PeriodAfternoon:
		return f.Afternoon
	case PeriodEvening:
		return f.Evening
	}
	return false
}

// Set updates the flag of the period
func (f *PeriodFlags) Set(p Period, v bool) {
	switch p {
	case PeriodMorning:
		f.Morning = v
	case PeriodAfternoon:
		f.Afternoon = v
	case PeriodEvening:
		f.Evening = v
	}
}

// All returns true if every period is set
func (f PeriodFlags) All() bool {
	return f.Morning && f.Afternoon && f.Evening
}

// Any returns true if at least one period is set
func (f PeriodFlags) Any() bool {
	return f.Morning || f.Afternoon || f.Evening
}
