package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func strs(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func booking(start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BookingDate: day(2026, 3, 10),
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      status,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openPeriod(weekday time.Weekday, period domain.Period, open, closeTime string) *domain.OperatingPeriod {
	return &domain.OperatingPeriod{
		Weekday:   weekday,
		Period:    period,
		IsOpen:    true,
		OpenTime:  ptr.Ptr(ts(open)),
		CloseTime: ptr.Ptr(ts(closeTime)),
	}
}

func service(id int64, minutes int) *domain.Service {
	return &domain.Service{ID: id, DurationMinutes: ptr.Ptr(minutes)}
}
