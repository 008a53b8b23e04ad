package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var periodColumns = []string{
	"unit_id",
	"weekday",
	"period",
	"is_open",
	"open_time",
	"close_time",
}

// Repository репозиторий настроек и часов работы салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUnitSettings получает настройки сетки салона
func (r *Repository) GetUnitSettings(ctx context.Context, unitID int64) (*domain.UnitSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"unit_id",
		"slot_granularity_minutes",
		"min_booking_notice_minutes",
		"updated_at",
	).
		From("unit_settings").
		Where(squirrel.Eq{"unit_id": unitID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.UnitSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.UnitID,
		&settings.SlotGranularityMinutes,
		&settings.MinBookingNoticeMinutes,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitSettings - scan settings: %w", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// UpsertUnitSettings создает или обновляет настройки салона
func (r *Repository) UpsertUnitSettings(ctx context.Context, settings *domain.UnitSettings) (*domain.UnitSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unit_settings").
		Columns("unit_id", "slot_granularity_minutes", "min_booking_notice_minutes").
		Values(settings.UnitID, settings.SlotGranularityMinutes, settings.MinBookingNoticeMinutes).
		Suffix("ON CONFLICT (unit_id) DO UPDATE SET " +
			"slot_granularity_minutes = EXCLUDED.slot_granularity_minutes, " +
			"min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertUnitSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertUnitSettings - execute upsert: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

// GetOperatingPeriods получает периоды работы салона в день недели
func (r *Repository) GetOperatingPeriods(ctx context.Context, unitID int64, weekday time.Weekday) ([]*domain.OperatingPeriod, error) {
	query, args, err := psqlbuilder.Select(periodColumns...).
		From("operating_periods").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("period").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingPeriods - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPeriods(ctx, "GetOperatingPeriods", query, args)
}

// GetAllOperatingPeriods получает периоды работы салона на всю неделю
func (r *Repository) GetAllOperatingPeriods(ctx context.Context, unitID int64) ([]*domain.OperatingPeriod, error) {
	query, args, err := psqlbuilder.Select(periodColumns...).
		From("operating_periods").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("weekday", "period").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllOperatingPeriods - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPeriods(ctx, "GetAllOperatingPeriods", query, args)
}

// ReplaceOperatingPeriods заменяет недельное расписание салона целиком.
// Вызывать внутри транзакции.
func (r *Repository) ReplaceOperatingPeriods(ctx context.Context, unitID int64, periods []*domain.OperatingPeriod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("operating_periods").
		Where(squirrel.Eq{"unit_id": unitID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceOperatingPeriods - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOperatingPeriods - execute delete: %v", ErrExecQuery, err)
	}

	if len(periods) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("operating_periods").Columns(periodColumns...)
	for _, p := range periods {
		insert = insert.Values(unitID, int(p.Weekday), string(p.Period), p.IsOpen, p.OpenTime, p.CloseTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOperatingPeriods - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOperatingPeriods - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) queryPeriods(ctx context.Context, op, query string, args []interface{}) ([]*domain.OperatingPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	periods := make([]*domain.OperatingPeriod, 0)
	for rows.Next() {
		var p domain.OperatingPeriod
		var weekday int
		var openTime, closeTime types.NullTimeString

		err := rows.Scan(
			&p.UnitID,
			&weekday,
			&p.Period,
			&p.IsOpen,
			&openTime,
			&closeTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}

		p.Weekday = time.Weekday(weekday)
		p.OpenTime = openTime.Ptr()
		p.CloseTime = closeTime.Ptr()

		periods = append(periods, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return periods, nil
}
