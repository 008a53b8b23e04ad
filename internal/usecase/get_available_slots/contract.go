package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания салона
type ScheduleRepository interface {
	// GetUnitSettings возвращает настройки сетки; ErrSettingsNotFound, если строки нет
	GetUnitSettings(ctx context.Context, unitID int64) (*domain.UnitSettings, error)
	// GetOperatingPeriods возвращает периоды работы салона в указанный день недели
	GetOperatingPeriods(ctx context.Context, unitID int64, weekday time.Weekday) ([]*domain.OperatingPeriod, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByProfessionalAndDate возвращает активные бронирования мастера на дату
	GetActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.Booking, error)
}

// LeaveRepository интерфейс репозитория выходных мастеров
type LeaveRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.LeavePeriod, error)
}

// CatalogRepository интерфейс справочника мастеров и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, professionalID int64) (*domain.Professional, error)
	// GetServicesByIDs возвращает найденные услуги салона; отсутствующие ID просто не попадают в результат
	GetServicesByIDs(ctx context.Context, unitID int64, serviceIDs []int64) ([]*domain.Service, error)
}

// TimeProvider интерфейс для получения текущего времени в часовом поясе салона
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс для записи метрик расчета
type MetricsRecorder interface {
	ObserveAvailability(outcome string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) ObserveAvailability(string, int) {}
