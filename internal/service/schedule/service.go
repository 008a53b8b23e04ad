package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	leaveRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service сервис управления расписанием салона и выходными мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	leaveRepo    LeaveRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	leaveRepo LeaveRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		leaveRepo:    leaveRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetUnitSchedule возвращает настройки сетки и недельное расписание салона
func (s *Service) GetUnitSchedule(ctx context.Context, unitID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetUnitSchedule: fetching schedule for unit=%d", unitID)

	if unitID <= 0 {
		return nil, fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	settings, defaults, err := s.settings(ctx, unitID)
	if err != nil {
		s.logger.Error("GetUnitSchedule: %v", err)
		return nil, err
	}

	periods, err := s.scheduleRepo.GetAllOperatingPeriods(ctx, unitID)
	if err != nil {
		s.logger.Error("GetUnitSchedule: repository error for unit=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: GetUnitSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(settings, defaults, periods), nil
}

// UpdateUnitSettings обновляет шаг сетки и минимальное время до записи
func (s *Service) UpdateUnitSettings(ctx context.Context, unitID int64, granularity, minNotice *int) (*domain.UnitSettings, error) {
	s.logger.Info("UpdateUnitSettings: unit=%d, granularity=%v, minNotice=%v", unitID, granularity, minNotice)

	settings, _, err := s.settings(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if granularity != nil {
		if !domain.IsValidGranularity(*granularity) {
			return nil, fmt.Errorf("%w: %d, allowed %v", ErrInvalidGranularity, *granularity, domain.AllowedGranularities)
		}
		settings.SlotGranularityMinutes = *granularity
	}
	if minNotice != nil {
		if *minNotice < 0 || *minNotice > domain.MaxBookingNoticeMinutes {
			return nil, fmt.Errorf("%w: minBookingNoticeMinutes must be in 0..%d", ErrInvalidInput, domain.MaxBookingNoticeMinutes)
		}
		settings.MinBookingNoticeMinutes = *minNotice
	}

	updated, err := s.scheduleRepo.UpsertUnitSettings(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateUnitSettings - repository error: %v", ErrInternal, err)
	}

	return updated, nil
}

// ReplaceOperatingPeriods заменяет недельное расписание салона
func (s *Service) ReplaceOperatingPeriods(ctx context.Context, unitID int64, reqs []models.PeriodRequest) error {
	s.logger.Info("ReplaceOperatingPeriods: unit=%d, periods=%d", unitID, len(reqs))

	periods, err := toDomainPeriods(unitID, reqs)
	if err != nil {
		return err
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.ReplaceOperatingPeriods(txCtx, unitID, periods); err != nil {
			return fmt.Errorf("%w: ReplaceOperatingPeriods - repository error: %v", ErrInternal, err)
		}
		return nil
	})
}

// UpdateSchedule применяет настройки и расписание в одной транзакции
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	if req.UnitID <= 0 {
		return nil, fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.SlotGranularityMinutes != nil || req.MinBookingNoticeMinutes != nil {
			if _, err := s.UpdateUnitSettings(txCtx, req.UnitID, req.SlotGranularityMinutes, req.MinBookingNoticeMinutes); err != nil {
				return err
			}
		}
		if req.Periods != nil {
			if err := s.ReplaceOperatingPeriods(txCtx, req.UnitID, req.Periods); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateSchedule: unit=%d: %v", req.UnitID, err)
		} else {
			s.logger.Warn("UpdateSchedule: unit=%d: %v", req.UnitID, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for unit=%d", req.UnitID)
	return s.GetUnitSchedule(ctx, req.UnitID)
}

// ListLeaves возвращает все выходные мастера
func (s *Service) ListLeaves(ctx context.Context, professionalID int64) (*models.LeaveListResponse, error) {
	s.logger.Info("ListLeaves: fetching leaves for professional=%d", professionalID)

	if err := s.checkProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("ListLeaves: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListLeaves - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLeaveList(leaves), nil
}

// CreateLeave создает разовый или еженедельный выходной
func (s *Service) CreateLeave(ctx context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("CreateLeave: professional=%d, date=%v, weekday=%v", req.ProfessionalID, req.Date, req.Weekday)

	leave, err := toDomainLeave(req)
	if err != nil {
		s.logger.Warn("CreateLeave: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	created, err := s.leaveRepo.Create(ctx, leave)
	if err != nil {
		s.logger.Error("CreateLeave: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: CreateLeave - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLeave: successfully created leave id=%d", created.ID)
	return models.FromDomainLeave(created), nil
}

// DeleteLeave удаляет запись о выходном
func (s *Service) DeleteLeave(ctx context.Context, leaveID int64) error {
	s.logger.Info("DeleteLeave: deleting leave id=%d", leaveID)

	leave, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			s.logger.Warn("DeleteLeave: leave id=%d not found", leaveID)
			return ErrLeaveNotFound
		}
		return fmt.Errorf("%w: DeleteLeave - repository error: %v", ErrInternal, err)
	}

	if err := s.leaveRepo.Delete(ctx, leave.ProfessionalID, leaveID); err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			return ErrLeaveNotFound
		}
		s.logger.Error("DeleteLeave: repository error for leave id=%d: %v", leaveID, err)
		return fmt.Errorf("%w: DeleteLeave - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLeave: successfully deleted leave id=%d", leaveID)
	return nil
}

// settings возвращает настройки салона; если их нет - значения по умолчанию и defaults=true
func (s *Service) settings(ctx context.Context, unitID int64) (*domain.UnitSettings, bool, error) {
	settings, err := s.scheduleRepo.GetUnitSettings(ctx, unitID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			return domain.DefaultUnitSettings(unitID), true, nil
		}
		return nil, false, fmt.Errorf("%w: failed to get unit settings: %v", ErrInternal, err)
	}
	return settings, false, nil
}

func (s *Service) checkProfessional(ctx context.Context, professionalID int64) error {
	if professionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if _, err := s.catalogRepo.GetProfessional(ctx, professionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("professional id=%d not found", professionalID)
			return ErrProfessionalNotFound
		}
		return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	return nil
}
