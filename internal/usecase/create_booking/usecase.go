package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/hold"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	leaveRepo    LeaveRepository
	catalogRepo  CatalogRepository
	holder       SlotHolder
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	leaveRepo LeaveRepository,
	catalogRepo CatalogRepository,
	holder SlotHolder,
	publisher EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		leaveRepo:    leaveRepo,
		catalogRepo:  catalogRepo,
		holder:       holder,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Расписание мастера на дату удерживается в Redis, доступность перепроверяется
// в сериализуемой транзакции, пересечения дополнительно отсекает ограничение в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, unit=%d, professional=%d, services=%v, date=%s, time=%s",
		req.CustomerID, req.UnitID, req.ProfessionalID, req.ServiceIDs, civiltime.FormatDate(req.Date), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	req.ServiceIDs = availability.UniqueIDs(req.ServiceIDs)

	// 2. Текущее время салона
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Мастер должен работать в салоне
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.UnitID != req.UnitID {
		uc.logger.Warn("CreateBooking: professional id=%d does not work at unit id=%d", req.ProfessionalID, req.UnitID)
		return nil, ErrProfessionalNotInUnit
	}

	// 4. Получаем услуги и считаем длительность и стоимость
	found, err := uc.catalogRepo.GetServicesByIDs(ctx, req.UnitID, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	services, err := availability.OrderServices(req.ServiceIDs, found)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	duration := availability.ResolveSlotCount(services, domain.DefaultSlotGranularityMinutes)
	if len(duration.DefaultedServiceIDs) > 0 {
		uc.logger.Warn("CreateBooking: services %v have malformed duration, using default %d min",
			duration.DefaultedServiceIDs, domain.DefaultServiceDurationMinutes)
	}

	endTime, err := req.StartTime.AddMinutes(duration.TotalDurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s + %d min does not fit in the day", req.StartTime, duration.TotalDurationMinutes)
		return nil, ErrSlotNotAvailable
	}
	if req.EndTime != nil && !req.EndTime.Equal(endTime) {
		return nil, fmt.Errorf("%w: endTime %s does not match services duration (expected %s)",
			ErrInvalidInput, req.EndTime, endTime)
	}

	price, unpriced := totalPrice(services)
	if len(unpriced) > 0 {
		uc.logger.Warn("CreateBooking: services %v have no price, counted as 0", unpriced)
	}

	// 5. Удерживаем расписание мастера на эту дату
	token, err := uc.holder.Acquire(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		if errors.Is(err, hold.ErrHoldBusy) {
			uc.logger.Warn("CreateBooking: schedule of professional=%d on %s is held by another request",
				req.ProfessionalID, civiltime.FormatDate(req.Date))
			uc.metrics.IncBookingConflict()
			return nil, ErrSlotBeingBooked
		}
		uc.logger.Error("CreateBooking: failed to acquire hold: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire hold: %v", ErrInternal, err)
	}
	var result *domain.Booking

	// 6. Перепроверяем доступность и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := uc.scheduleRepo.GetUnitSettings(txCtx, req.UnitID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
				return txStepError("failed to get unit settings", err)
			}
			settings = domain.DefaultUnitSettings(req.UnitID)
		}
		settings.Normalize()

		periods, err := uc.scheduleRepo.GetOperatingPeriods(txCtx, req.UnitID, req.Date.Weekday())
		if err != nil {
			return txStepError("failed to get operating periods", err)
		}

		leaves, err := uc.leaveRepo.GetByProfessional(txCtx, req.ProfessionalID)
		if err != nil {
			return txStepError("failed to get leave records", err)
		}

		// 6.1. Активные бронирования читаем с блокировкой
		bookings, err := uc.bookingRepo.GetActiveByProfessionalAndDate(txCtx, req.ProfessionalID, req.Date)
		if err != nil {
			return txStepError("failed to get bookings", err)
		}

		// 6.2. Тот же расчет, что показывает клиенту список свободных времен
		count := availability.ResolveSlotCount(services, settings.SlotGranularityMinutes)
		day := availability.ComputeDay(availability.DayInput{
			Date:     req.Date,
			Now:      now,
			Settings: settings,
			Periods:  periods,
			Bookings: bookings,
			Leaves:   leaves,
			Count:    count,
		})
		if !day.Slots.Contains(req.StartTime) {
			uc.logger.Warn("CreateBooking: %s on %s is not available for professional=%d",
				req.StartTime, civiltime.FormatDate(req.Date), req.ProfessionalID)
			return ErrSlotNotAvailable
		}

		// 6.3. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:     req.CustomerID,
			ProfessionalID: req.ProfessionalID,
			UnitID:         req.UnitID,
			BookingDate:    req.Date,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusPending,
			ServiceIDs:     req.ServiceIDs,
			TotalPrice:     price,
			Notes:          req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	// 7. Удержание снимаем сразу после транзакции, до публикации события
	if releaseErr := uc.holder.Release(context.WithoutCancel(ctx), req.ProfessionalID, req.Date, token); releaseErr != nil {
		uc.logger.Warn("CreateBooking: failed to release hold: %v", releaseErr)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), bookingRepo.IsConflict(err):
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("CreateBooking: slot conflict for professional=%d at %s %s: %v",
				req.ProfessionalID, civiltime.FormatDate(req.Date), req.StartTime, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 8. Событие публикуем после коммита; ошибка публикации не отменяет бронирование
	if err := uc.publisher.PublishBookingEvent(ctx, events.TypeBookingCreated, result); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		UnitID:          result.UnitID,
		ProfessionalID:  result.ProfessionalID,
		ServiceIDs:      result.ServiceIDs,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes(),
		Status:          string(result.Status),
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// txStepError оборачивает ошибку чтения внутри транзакции.
// Проигранная гонка сериализации остается конфликтом, который можно повторить
func txStepError(step string, err error) error {
	if bookingRepo.IsConflict(err) {
		return fmt.Errorf("%w: %s: %v", bookingRepo.ErrSlotConflict, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}
