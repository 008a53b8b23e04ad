package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByID внутри транзакции блокирует строку (FOR UPDATE)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetHistoryByID(ctx context.Context, id int64) (*domain.BookingHistory, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	MoveToHistory(ctx context.Context, h *domain.BookingHistory) error
}

// EventPublisher публикует события жизненного цикла бронирования
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для записи метрик
type MetricsRecorder interface {
	IncBookingTransition(to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) IncBookingTransition(string) {}
