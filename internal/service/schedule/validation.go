package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// toDomainPeriods валидирует недельное расписание и конвертирует его в domain.
// Периоды одного дня не должны повторяться и пересекаться.
func toDomainPeriods(unitID int64, reqs []models.PeriodRequest) ([]*domain.OperatingPeriod, error) {
	type key struct {
		weekday time.Weekday
		period  domain.Period
	}

	seen := make(map[key]struct{}, len(reqs))
	periods := make([]*domain.OperatingPeriod, 0, len(reqs))

	for _, r := range reqs {
		if r.Weekday < 0 || r.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be in 0..6, got %d", ErrInvalidPeriod, r.Weekday)
		}
		period := domain.Period(r.Period)
		if !period.IsValid() {
			return nil, fmt.Errorf("%w: unknown period %q", ErrInvalidPeriod, r.Period)
		}

		k := key{time.Weekday(r.Weekday), period}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: duplicate %s on weekday %d", ErrInvalidPeriod, period, r.Weekday)
		}
		seen[k] = struct{}{}

		p := &domain.OperatingPeriod{
			UnitID:  unitID,
			Weekday: k.weekday,
			Period:  period,
			IsOpen:  r.IsOpen,
		}

		if r.IsOpen {
			if r.OpenTime == nil || r.CloseTime == nil {
				return nil, fmt.Errorf("%w: open %s on weekday %d needs openTime and closeTime", ErrInvalidPeriod, period, r.Weekday)
			}
			open, err := types.NewTimeStringFromString(*r.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidPeriod, err)
			}
			closeTime, err := types.NewTimeStringFromString(*r.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidPeriod, err)
			}
			if !open.IsBefore(closeTime) {
				return nil, fmt.Errorf("%w: %s on weekday %d: openTime must be before closeTime", ErrInvalidPeriod, period, r.Weekday)
			}
			p.OpenTime = &open
			p.CloseTime = &closeTime
		}

		periods = append(periods, p)
	}

	if err := checkNoOverlap(periods); err != nil {
		return nil, err
	}

	return periods, nil
}

// checkNoOverlap проверяет, что открытые периоды одного дня не пересекаются
func checkNoOverlap(periods []*domain.OperatingPeriod) error {
	byDay := make(map[time.Weekday][]*domain.OperatingPeriod)
	for _, p := range periods {
		if p.IsOpen {
			byDay[p.Weekday] = append(byDay[p.Weekday], p)
		}
	}

	for weekday, day := range byDay {
		sort.Slice(day, func(i, j int) bool {
			return day[i].OpenTime.IsBefore(*day[j].OpenTime)
		})
		for i := 1; i < len(day); i++ {
			prev, cur := day[i-1], day[i]
			if domain.Overlaps(prev.OpenTime.Minutes(), prev.CloseTime.Minutes(), cur.OpenTime.Minutes(), cur.CloseTime.Minutes()) {
				return fmt.Errorf("%w: %s and %s overlap on weekday %d", ErrInvalidPeriod, prev.Period, cur.Period, weekday)
			}
		}
	}

	return nil
}

// toDomainLeave валидирует запрос на выходной
func toDomainLeave(req *models.CreateLeaveRequest) (*domain.LeavePeriod, error) {
	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if (req.Date == nil) == (req.Weekday == nil) {
		return nil, fmt.Errorf("%w: exactly one of date and weekday is required", ErrInvalidInput)
	}
	if !req.Morning && !req.Afternoon && !req.Evening {
		return nil, fmt.Errorf("%w: at least one period must be blocked", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	leave := &domain.LeavePeriod{
		ProfessionalID: req.ProfessionalID,
		Morning:        req.Morning,
		Afternoon:      req.Afternoon,
		Evening:        req.Evening,
		Reason:         req.Reason,
	}

	if req.Date != nil {
		date, err := civiltime.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		leave.Date = &date
	}
	if req.Weekday != nil {
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be in 0..6", ErrInvalidInput)
		}
		w := time.Weekday(*req.Weekday)
		leave.Weekday = &w
	}

	return leave, nil
}
