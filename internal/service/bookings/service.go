package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// Service сервис чтения бронирований для админки и клиента
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Если среди активных его нет, ищет в истории (завершенные и отмененные).
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err == nil {
		return models.FromDomainBooking(booking), nil
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	history, err := s.bookingRepo.GetHistoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: history repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - history repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(history), nil
}

// ListUnitBookings получает бронирования салона с фильтрацией по мастеру и периоду.
// Имя мастера и названия услуг подтягиваются одним запросом.
func (s *Service) ListUnitBookings(ctx context.Context, req *models.ListUnitBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListUnitBookings: fetching bookings for unit=%d", req.UnitID)
	if req.ProfessionalID != nil {
		logMsg += fmt.Sprintf(", professional=%d", *req.ProfessionalID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", civiltime.FormatDate(*req.StartDate), civiltime.FormatDate(*req.EndDate))
	}
	if req.IncludeHistory {
		logMsg += ", includeHistory=true"
	}
	s.logger.Info(logMsg)

	if req.UnitID <= 0 {
		return nil, fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListUnitBookings: endDate before startDate for unit=%d", req.UnitID)
		return nil, ErrInvalidTimeRange
	}

	views, err := s.bookingRepo.ListViews(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListUnitBookings: repository error for unit=%d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: ListUnitBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUnitBookings: successfully fetched %d bookings for unit=%d", len(views), req.UnitID)
	return models.FromDomainViewList(views), nil
}

// ListCustomerBookings получает бронирования клиента.
// Клиент видит только свои бронирования.
func (s *Service) ListCustomerBookings(ctx context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListCustomerBookings: fetching bookings for customer=%d by user=%d", req.CustomerID, req.UserID)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.UserID != req.CustomerID {
		s.logger.Warn("ListCustomerBookings: access denied for user=%d to customer=%d", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	customerID := req.CustomerID
	views, err := s.bookingRepo.ListViews(ctx, domain.BookingsFilter{
		CustomerID:     &customerID,
		IncludeHistory: req.IncludeHistory,
	})
	if err != nil {
		s.logger.Error("ListCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: ListCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCustomerBookings: successfully fetched %d bookings for customer=%d", len(views), req.CustomerID)
	return models.FromDomainViewList(views), nil
}
