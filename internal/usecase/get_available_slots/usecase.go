package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// UseCase use case для получения свободных времен записи к мастеру на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	leaveRepo    LeaveRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	leaveRepo LeaveRepository,
	catalogRepo CatalogRepository,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		leaveRepo:    leaveRepo,
		catalogRepo:  catalogRepo,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// dayData входные данные расчета, собранные параллельно
type dayData struct {
	professional *domain.Professional
	settings     *domain.UnitSettings
	periods      []*domain.OperatingPeriod
	bookings     []*domain.Booking
	leaves       []*domain.LeavePeriod
	services     []*domain.Service
}

// Execute выполняет use case получения свободных времен.
// При ошибке получения данных возвращает и пустой ответ, и ошибку ErrDataUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: unit=%d, professional=%d, services=%v, date=%s",
		req.UnitID, req.ProfessionalID, req.ServiceIDs, civiltime.FormatDate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	req.ServiceIDs = availability.UniqueIDs(req.ServiceIDs)

	// 2. Текущее время салона читаем один раз на запрос
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Параллельно получаем все входные данные
	data, err := uc.fetch(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			uc.logger.Error("GetAvailableSlots: failing closed for professional=%d date=%s: %v",
				req.ProfessionalID, civiltime.FormatDate(req.Date), err)
			uc.metrics.ObserveAvailability("fail_closed", 0)
			return failClosed(req), err
		}
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 4. Мастер должен работать в этом салоне
	if data.professional.UnitID != req.UnitID {
		uc.logger.Warn("GetAvailableSlots: professional=%d belongs to unit=%d, not %d",
			req.ProfessionalID, data.professional.UnitID, req.UnitID)
		return nil, ErrProfessionalNotInUnit
	}

	services, err := availability.OrderServices(req.ServiceIDs, data.services)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	// 5. Считаем количество ячеек сетки для выбранных услуг
	count := availability.ResolveSlotCount(services, data.settings.SlotGranularityMinutes)
	if count.EmptySelection {
		uc.logger.Warn("GetAvailableSlots: no services selected, using default duration %d min",
			domain.DefaultServiceDurationMinutes)
	}
	if len(count.DefaultedServiceIDs) > 0 {
		uc.logger.Warn("GetAvailableSlots: services %v have malformed duration, using default %d min",
			count.DefaultedServiceIDs, domain.DefaultServiceDurationMinutes)
	}

	// 6. Прогоняем сетку и фильтр по каждому периоду
	day := availability.ComputeDay(availability.DayInput{
		Date:     req.Date,
		Now:      now,
		Settings: data.settings,
		Periods:  data.periods,
		Bookings: data.bookings,
		Leaves:   data.leaves,
		Count:    count,
	})

	outcome := "ok"
	switch {
	case day.Blocked.All():
		outcome = "on_leave"
	case !day.Open.Any():
		outcome = "closed"
	}
	uc.metrics.ObserveAvailability(outcome, day.Slots.Total())

	uc.logger.Info("GetAvailableSlots: %d start times for professional=%d date=%s (duration=%d, slots=%d)",
		day.Slots.Total(), req.ProfessionalID, civiltime.FormatDate(req.Date), count.TotalDurationMinutes, count.SlotsNeeded)

	return &Response{
		Date:                   req.Date,
		UnitID:                 req.UnitID,
		ProfessionalID:         req.ProfessionalID,
		ServiceIDs:             req.ServiceIDs,
		TotalDurationMinutes:   count.TotalDurationMinutes,
		SlotsNeeded:            count.SlotsNeeded,
		SlotGranularityMinutes: data.settings.SlotGranularityMinutes,
		PeriodAvailability:     day.Available,
		SlotsByPeriod:          day.Slots,
		DefaultsApplied:        count.HasDefaults(),
	}, nil
}

// fetch собирает данные параллельно. Ошибки инфраструктуры оборачиваются в ErrDataUnavailable,
// отсутствие мастера возвращается как ErrProfessionalNotFound.
func (uc *UseCase) fetch(ctx context.Context, req *Request) (*dayData, error) {
	data := &dayData{}
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
		periods, err := uc.scheduleRepo.GetOperatingPeriods(gctx, req.UnitID, req.Date.Weekday())
		if err != nil {
			return fmt.Errorf("%w: get operating periods: %v", ErrDataUnavailable, err)
		}
		data.periods = periods
		return nil
	})

	g.Go(func() error {
		bookings, err := uc.bookingRepo.GetActiveByProfessionalAndDate(gctx, req.ProfessionalID, req.Date)
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
