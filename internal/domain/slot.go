package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// DayStatus is the calendar classification of a date
type DayStatus string

const (
	DayPast        DayStatus = "past"
	DayOnLeave     DayStatus = "on_leave"
	DayClosed      DayStatus = "closed"
	DayFullyBooked DayStatus = "fully_booked"
	DayAvailable   DayStatus = "available"
	DayUnavailable DayStatus = "unavailable"
)

// PeriodSlots holds available start times per period, each in ascending order
type PeriodSlots struct {
	Morning   []types.TimeString
	Afternoon []types.TimeString
	Evening   []types.TimeString
}

// EmptyPeriodSlots returns non-nil empty lists for every period
func EmptyPeriodSlots() PeriodSlots {
	return PeriodSlots{
		Morning:   []types.TimeString{},
		Afternoon: []types.TimeString{},
		Evening:   []types.TimeString{},
	}
}

// Get returns the slots of the period
func (s PeriodSlots) Get(p Period) []types.TimeString {
	switch p {
	case PeriodMorning:
		return s.Morning
	case PeriodAfternoon:
		return s.Afternoon
	case PeriodEvening:
		return s.Evening
	}
	return nil
}

// Set replaces the slots of the period
func (s *PeriodSlots) Set(p Period, slots []types.TimeString) {
	switch p {
	case PeriodMorning:
		s.Morning = slots
	case PeriodAfternoon:
		s.Afternoon = slots
	case PeriodEvening:
		s.Evening = slots
	}
}

// Total returns the number of slots across all periods
func (s PeriodSlots) Total() int {
	return len(s.Morning) + len(s.Afternoon) + len(s.Evening)
}

// Contains returns true if start is offered in any period
func (s PeriodSlots) Contains(start types.TimeString) bool {
	for _, p := range AllPeriods {
		for _, slot := range s.Get(p) {
			if slot.Equal(start) {
				return true
			}
		}
	}
	return false
}
