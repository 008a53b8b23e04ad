package get_calendar_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

const (
	minYear = 2000
	maxYear = 2100
)

// UseCase use case календаря доступности мастера на месяц
type UseCase struct {
	scheduleRepo        ScheduleRepository
	bookingRepo         BookingRepository
	leaveRepo           LeaveRepository
	catalogRepo         CatalogRepository
	timeProvider        TimeProvider
	saturationThreshold int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case.
// saturationThreshold - минимальное число активных записей, при котором день без свободных времен считается fully_booked
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	leaveRepo LeaveRepository,
	catalogRepo CatalogRepository,
	timeProvider TimeProvider,
	saturationThreshold int,
	logger Logger,
) *UseCase {
	if saturationThreshold < 1 {
		saturationThreshold = domain.DefaultSaturationThreshold
	}
	return &UseCase{
		scheduleRepo:        scheduleRepo,
		bookingRepo:         bookingRepo,
		leaveRepo:           leaveRepo,
		catalogRepo:         catalogRepo,
		timeProvider:        timeProvider,
		saturationThreshold: saturationThreshold,
		logger:              logger,
	}
}

type monthData struct {
	professional *domain.Professional
	settings     *domain.UnitSettings
	periods      []*domain.OperatingPeriod
	bookings     []*domain.Booking
	leaves       []*domain.LeavePeriod
	services     []*domain.Service
}

// Execute выполняет use case календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarAvailability: unit=%d, professional=%d, services=%v, month=%04d-%02d",
		req.UnitID, req.ProfessionalID, req.ServiceIDs, req.Year, int(req.Month))

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarAvailability: validation failed: %v", err)
		return nil, err
	}
	req.ServiceIDs = availability.UniqueIDs(req.ServiceIDs)

	now := uc.timeProvider.Now()
	today := civiltime.DateOf(now)
	first, last := civiltime.MonthRange(req.Year, req.Month)

	// 2. Одним пакетом получаем данные на весь месяц
	data, err := uc.fetch(ctx, req, first, last)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			uc.logger.Error("GetCalendarAvailability: failing closed: %v", err)
			return failClosed(req, first, last, today), err
		}
		uc.logger.Warn("GetCalendarAvailability: %v", err)
		return nil, err
	}

	if data.professional.UnitID != req.UnitID {
		return nil, ErrProfessionalNotInUnit
	}

	services, err := availability.OrderServices(req.ServiceIDs, data.services)
	if err != nil {
		uc.logger.Warn("GetCalendarAvailability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	count := availability.ResolveSlotCount(services, data.settings.SlotGranularityMinutes)
	if count.HasDefaults() {
		uc.logger.Warn("GetCalendarAvailability: default duration applied (empty=%t, services=%v)",
			count.EmptySelection, count.DefaultedServiceIDs)
	}

	// 3. Для каждого дня прогоняем тот же расчет, что и для одного дня
	resp := &Response{
		UnitID:               req.UnitID,
		ProfessionalID:       req.ProfessionalID,
		Year:                 req.Year,
		Month:                req.Month,
		TotalDurationMinutes: count.TotalDurationMinutes,
		SlotsNeeded:          count.SlotsNeeded,
		Days:                 make([]Day, 0, last.Day()),
	}

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		isPast := date.Before(today)
		var result availability.DayResult
		if !isPast {
			result = availability.ComputeDay(availability.DayInput{
				Date:     date,
				Now:      now,
				Settings: data.settings,
				Periods:  data.periods,
				Bookings: data.bookings,
				Leaves:   data.leaves,
				Count:    count,
			})
		}

		resp.Days = append(resp.Days, Day{
			Date:               date,
			Status:             availability.Classify(result, isPast, uc.saturationThreshold),
			SlotsCount:         result.Slots.Total(),
			PeriodAvailability: result.Available,
		})
	}

	uc.logger.Info("GetCalendarAvailability: built %d days for professional=%d", len(resp.Days), req.ProfessionalID)

	return resp, nil
}

func (uc *UseCase) fetch(ctx context.Context, req *Request, first, last time.Time) (*monthData, error) {
	data := &monthData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		professional, err := uc.catalogRepo.GetProfessional(gctx, req.ProfessionalID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				return fmt.Errorf("%w: id=%d", ErrProfessionalNotFound, req.ProfessionalID)
			}
			return fmt.Errorf("%w: get professional: %v", ErrDataUnavailable, err)
		}
		data.professional = professional
		return nil
	})

	g.Go(func() error {
		settings, err := uc.scheduleRepo.GetUnitSettings(gctx, req.UnitID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
				return fmt.Errorf("%w: get unit settings: %v", ErrDataUnavailable, err)
			}
			settings = domain.DefaultUnitSettings(req.UnitID)
		}
		settings.Normalize()
		data.settings = settings
		return nil
	})

	g.Go(func() error {
		periods, err := uc.scheduleRepo.GetAllOperatingPeriods(gctx, req.UnitID)
		if err != nil {
			return fmt.Errorf("%w: get operating periods: %v", ErrDataUnavailable, err)
		}
		data.periods = periods
		return nil
	})

	g.Go(func() error {
		bookings, err := uc.bookingRepo.GetActiveByProfessionalAndRange(gctx, req.ProfessionalID, first, last)
		if err != nil {
			return fmt.Errorf("%w: get active bookings: %v", ErrDataUnavailable, err)
		}
		data.bookings = bookings
		return nil
	})

	g.Go(func() error {
		leaves, err := uc.leaveRepo.GetByProfessional(gctx, req.ProfessionalID)
		if err != nil {
			return fmt.Errorf("%w: get leave records: %v", ErrDataUnavailable, err)
		}
		data.leaves = leaves
		return nil
	})

	g.Go(func() error {
		if len(req.ServiceIDs) == 0 {
			return nil
		}
		services, err := uc.catalogRepo.GetServicesByIDs(gctx, req.UnitID, req.ServiceIDs)
		if err != nil {
			return fmt.Errorf("%w: get services: %v", ErrDataUnavailable, err)
		}
		data.services = services
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// failClosed строит календарь, в котором все непрошедшие дни недоступны
func failClosed(req *Request, first, last, today time.Time) *Response {
	resp := &Response{
		UnitID:         req.UnitID,
		ProfessionalID: req.ProfessionalID,
		Year:           req.Year,
		Month:          req.Month,
		Days:           make([]Day, 0, last.Day()),
	}
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		status := domain.DayUnavailable
		if date.Before(today) {
			status = domain.DayPast
		}
		resp.Days = append(resp.Days, Day{Date: date, Status: status})
	}
	return resp
}
