package bookings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetHistoryByID(ctx context.Context, id int64) (*domain.BookingHistory, error)
	ListViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
