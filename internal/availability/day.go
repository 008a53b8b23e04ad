package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// DayInput данные, необходимые для расчета одного дня
type DayInput struct {
	Date     time.Time
	Now      time.Time
	Settings *domain.UnitSettings
	// Periods могут содержать записи для любых дней недели, берутся только совпадающие с Date
	Periods []*domain.OperatingPeriod
	// Bookings могут содержать записи на другие даты, берутся только на Date
	Bookings []*domain.Booking
	Leaves   []*domain.LeavePeriod
	Count    SlotCount
}

// DayResult результат расчета одного дня
type DayResult struct {
	Slots          domain.PeriodSlots
	Available      domain.PeriodFlags
	Open           domain.PeriodFlags
	Blocked        domain.PeriodFlags
	ActiveBookings int
}

// ComputeDay прогоняет сетку и фильтр для каждого периода дня
func ComputeDay(in DayInput) DayResult {
	settings := in.Settings
	if settings == nil {
		settings = domain.DefaultUnitSettings(0)
	}
	granularity := settings.SlotGranularityMinutes
	if !domain.IsValidGranularity(granularity) {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	result := DayResult{
		Slots:   domain.EmptyPeriodSlots(),
		Blocked: domain.ResolveLeave(in.Leaves, in.Date),
	}

	dayBookings := bookingsOn(in.Bookings, in.Date)
	result.ActiveBookings = len(dayBookings)

	isToday := civiltime.SameDay(in.Date, in.Now)
	weekday := in.Date.Weekday()

	for _, period := range domain.AllPeriods {
		op := findPeriod(in.Periods, weekday, period)
		if op == nil {
			continue
		}
		open, closeTime, ok := op.Bounds()
		if !ok {
			continue
		}
		result.Open.Set(period, true)

		grid := GenerateGrid(open, closeTime, granularity, isToday, in.Now, settings.MinBookingNoticeMinutes)
		slots := FilterAvailable(
			grid,
			in.Count.SlotsNeeded,
			granularity,
			in.Count.TotalDurationMinutes,
			dayBookings,
			result.Blocked.Get(period),
		)

		result.Slots.Set(period, slots)
		result.Available.Set(period, len(slots) > 0)
	}

	return result
}

// Classify определяет статус дня для календаря
func Classify(day DayResult, isPast bool, saturationThreshold int) domain.DayStatus {
	if saturationThreshold < 1 {
		saturationThreshold = domain.DefaultSaturationThreshold
	}

	switch {
	case isPast:
		return domain.DayPast
	case day.Blocked.All():
		return domain.DayOnLeave
	case !day.Open.Any():
		return domain.DayClosed
	case day.Slots.Total() > 0:
		return domain.DayAvailable
	case day.ActiveBookings >= saturationThreshold:
		return domain.DayFullyBooked
	default:
		return domain.DayUnavailable
	}
}

func findPeriod(periods []*domain.OperatingPeriod, weekday time.Weekday, period domain.Period) *domain.OperatingPeriod {
	for _, p := range periods {
		if p != nil && p.Weekday == weekday && p.Period == period {
			return p
		}
	}
	return nil
}

func bookingsOn(bookings []*domain.Booking, date time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.IsActive() && civiltime.SameDay(b.BookingDate, date) {
			result = append(result, b)
		}
	}
	return result
}
