package domain

import "time"

// LeavePeriod blocks a professional's periods either on a specific date
// or on every occurrence of a weekday. Exactly one of Date and Weekday is set.
type LeavePeriod struct {
	ID             int64
	ProfessionalID int64
	Date           *time.Time
	Weekday        *time.Weekday
	Morning        bool
	Afternoon      bool
	Evening        bool
	Reason         *string
	CreatedAt      time.Time
}

// IsRecurring returns true for weekly leave
func (l *LeavePeriod) IsRecurring() bool {
	return l.Weekday != nil
}

// Matches returns true if the record applies to the civil date
func (l *LeavePeriod) Matches(date time.Time) bool {
	if l.Date != nil {
		y1, m1, d1 := l.Date.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if l.Weekday != nil {
		return *l.Weekday == date.Weekday()
	}
	return false
}

// Flags returns the blocked periods of the record
func (l *LeavePeriod) Flags() PeriodFlags {
	return PeriodFlags{Morning: l.Morning, Afternoon: l.Afternoon, Evening: l.Evening}
}

// ResolveLeave unions the blocked periods of every record matching the date.
// The date is fully off when the result has all three periods set.
func ResolveLeave(leaves []*LeavePeriod, date time.Time) PeriodFlags {
	var blocked PeriodFlags
	for _, l := range leaves {
		if l == nil || !l.Matches(date) {
			continue
		}
		blocked.Morning = blocked.Morning || l.Morning
		blocked.Afternoon = blocked.Afternoon || l.Afternoon
		blocked.Evening = blocked.Evening || l.Evening
	}
	return blocked
}
