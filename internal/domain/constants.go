package domain

// Default configuration values
const (
	DefaultServiceDurationMinutes  = 30
	DefaultSlotGranularityMinutes  = 20
	DefaultMinBookingNoticeMinutes = 20
	DefaultSaturationThreshold     = 1
)

// AllowedGranularities supported grid steps in minutes
var AllowedGranularities = []int{10, 20, 40}

// Business validation constants
const (
	MaxBookingNoticeMinutes = 1440 // сутки
	MaxServicesPerBooking   = 10
	MaxNotesLength          = 500
	MaxReasonLength         = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// ActiveStatuses статусы бронирований, которые занимают время мастера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
