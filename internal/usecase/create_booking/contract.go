package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetActiveByProfessionalAndDate внутри транзакции блокирует строки (FOR UPDATE)
	GetActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания салона
type ScheduleRepository interface {
	GetUnitSettings(ctx context.Context, unitID int64) (*domain.UnitSettings, error)
	GetOperatingPeriods(ctx context.Context, unitID int64, weekday time.Weekday) ([]*domain.OperatingPeriod, error)
}

// LeaveRepository интерфейс репозитория выходных мастеров
type LeaveRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.LeavePeriod, error)
}

// CatalogRepository интерфейс справочника мастеров и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, professionalID int64) (*domain.Professional, error)
	GetServicesByIDs(ctx context.Context, unitID int64, serviceIDs []int64) ([]*domain.Service, error)
}

// SlotHolder короткоживущая блокировка расписания мастера на дату
type SlotHolder interface {
	// Acquire возвращает токен удержания; ErrHoldBusy, если удержание уже взято
	Acquire(ctx context.Context, professionalID int64, date time.Time) (string, error)
	Release(ctx context.Context, professionalID int64, date time.Time, token string) error
}

// EventPublisher публикует события жизненного цикла бронирования
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс для записи метрик
type MetricsRecorder interface {
	IncBookingConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) IncBookingConflict() {}
