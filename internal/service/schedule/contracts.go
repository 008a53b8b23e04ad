package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания салона
type ScheduleRepository interface {
	GetUnitSettings(ctx context.Context, unitID int64) (*domain.UnitSettings, error)
	UpsertUnitSettings(ctx context.Context, settings *domain.UnitSettings) (*domain.UnitSettings, error)
	GetAllOperatingPeriods(ctx context.Context, unitID int64) ([]*domain.OperatingPeriod, error)
	ReplaceOperatingPeriods(ctx context.Context, unitID int64, periods []*domain.OperatingPeriod) error
}

// LeaveRepository интерфейс репозитория выходных мастеров
type LeaveRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.LeavePeriod, error)
	GetByID(ctx context.Context, id int64) (*domain.LeavePeriod, error)
	Create(ctx context.Context, leave *domain.LeavePeriod) (*domain.LeavePeriod, error)
	Delete(ctx context.Context, professionalID, id int64) error
}

// CatalogRepository интерфейс справочника мастеров
type CatalogRepository interface {
	GetProfessional(ctx context.Context, professionalID int64) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
