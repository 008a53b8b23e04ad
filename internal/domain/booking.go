package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if a booking in this status occupies the professional's time
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsFinal returns true for statuses that move the booking to history
func (s BookingStatus) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> confirmed, and any active status -> completed or cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch {
	case s == StatusPending && next == StatusConfirmed:
		return true
	case s.IsActive() && next.IsFinal():
		return true
	default:
		return false
	}
}

// Booking represents a reservation of a professional's time for one or more services
type Booking struct {
	ID             int64
	CustomerID     int64
	ProfessionalID int64
	UnitID         int64
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus
	ServiceIDs     []int64
	TotalPrice     float64
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks availability
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// DurationMinutes returns the length of the booked interval
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// BookingHistory is a finalized booking moved out of the active table
type BookingHistory struct {
	Booking
	FinalStatus BookingStatus
	Reason      *string
	FinalizedBy *int64
	FinalizedAt time.Time
}

// BookingView is a booking enriched for admin listings
type BookingView struct {
	Booking
	ProfessionalName string
	ServiceNames     []string
	FinalizedAt      *time.Time
	Reason           *string
}

// BookingsFilter фильтр для админских списков бронирований
type BookingsFilter struct {
	UnitID         *int64     // Фильтр по салону
	CustomerID     *int64     // Фильтр по клиенту
	ProfessionalID *int64     // Фильтр по мастеру (опционально)
	StartDate      *time.Time // Начало периода (опционально)
	EndDate        *time.Time // Конец периода (опционально)
	IncludeHistory bool       // Включать завершенные и отмененные из истории
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
