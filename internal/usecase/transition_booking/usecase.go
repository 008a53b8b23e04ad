package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute меняет статус бронирования.
// pending -> confirmed обновляется на месте; переход в completed или cancelled
// переносит бронирование в историю, освобождая время мастера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking id=%d -> %s by actor=%d", req.BookingID, req.NewStatus, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		booking  *domain.Booking
		previous domain.BookingStatus
		history  *domain.BookingHistory
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return uc.notActive(txCtx, req)
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		previous = current.Status
		if !current.Status.CanTransitionTo(req.NewStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, req.NewStatus)
		}

		// Подтверждение: бронирование остается активным
		if !req.NewStatus.IsFinal() {
			if err := uc.bookingRepo.UpdateStatus(txCtx, current.ID, req.NewStatus); err != nil {
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
			current.Status = req.NewStatus
			booking = current
			return nil
		}

		// Завершение или отмена: переносим в историю
		actor := req.ActorID
		history = &domain.BookingHistory{
			Booking:     *current,
			FinalStatus: req.NewStatus,
			Reason:      req.Reason,
			FinalizedBy: &actor,
		}
		history.Status = req.NewStatus

		if err := uc.bookingRepo.MoveToHistory(txCtx, history); err != nil {
			return fmt.Errorf("%w: failed to move booking to history: %v", ErrInternal, err)
		}

		booking = &history.Booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("TransitionBooking: booking id=%d not found", req.BookingID)
		case errors.Is(err, ErrInvalidStatusTransition):
			uc.logger.Warn("TransitionBooking: booking id=%d: %v", req.BookingID, err)
		default:
			uc.logger.Error("TransitionBooking: booking id=%d: %v", req.BookingID, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.metrics.IncBookingTransition(string(req.NewStatus))
	uc.logger.Info("TransitionBooking: booking id=%d %s -> %s", req.BookingID, previous, req.NewStatus)

	if err := uc.publisher.PublishBookingEvent(ctx, events.TypeForStatus(req.NewStatus), booking); err != nil {
		uc.logger.Error("TransitionBooking: failed to publish event for booking id=%d: %v", req.BookingID, err)
	}

	resp := &Response{
		BookingID:      req.BookingID,
		PreviousStatus: previous,
		Status:         req.NewStatus,
	}
	if history != nil {
		finalizedAt := history.FinalizedAt
		resp.FinalizedAt = &finalizedAt
	}

	return resp, nil
}

// notActive различает уже завершенное бронирование и несуществующее
func (uc *UseCase) notActive(ctx context.Context, req *Request) error {
	h, err := uc.bookingRepo.GetHistoryByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: failed to get booking history: %v", ErrInternal, err)
	}
	return fmt.Errorf("%w: booking is already %s", ErrInvalidStatusTransition, h.FinalStatus)
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if !req.NewStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
