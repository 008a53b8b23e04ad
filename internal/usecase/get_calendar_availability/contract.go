package get_calendar_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания салона
type ScheduleRepository interface {
	GetUnitSettings(ctx context.Context, unitID int64) (*domain.UnitSettings, error)
	// GetAllOperatingPeriods возвращает периоды работы на все дни недели
	GetAllOperatingPeriods(ctx context.Context, unitID int64) ([]*domain.OperatingPeriod, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByProfessionalAndRange возвращает активные бронирования мастера в диапазоне дат включительно
	GetActiveByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Booking, error)
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

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
