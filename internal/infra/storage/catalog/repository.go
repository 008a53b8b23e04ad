package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository справочник салонов, мастеров и услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfessional получает активного мастера по ID
func (r *Repository) GetProfessional(ctx context.Context, professionalID int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "unit_id", "name", "is_active").
		From("professionals").
		Where(squirrel.Eq{"id": professionalID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UnitID, &p.Name, &p.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetServicesByIDs получает активные услуги салона по списку ID.
// ID, которых нет (или которые принадлежат другому салону), в результат не попадают.
func (r *Repository) GetServicesByIDs(ctx context.Context, unitID int64, serviceIDs []int64) ([]*domain.Service, error) {
	if len(serviceIDs) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"unit_id",
		"name",
		"duration_minutes",
		"price",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"id": serviceIDs}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0, len(serviceIDs))
	for rows.Next() {
		var s domain.Service
		var duration sql.NullInt32
		var price sql.NullFloat64

		if err := rows.Scan(&s.ID, &s.UnitID, &s.Name, &duration, &price, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan row: %v", ErrScanRow, err)
		}

		if duration.Valid {
			d := int(duration.Int32)
			s.DurationMinutes = &d
		}
		if price.Valid {
			p := price.Float64
			s.Price = &p
		}

		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// CreateUnit создает салон и возвращает его ID
func (r *Repository) CreateUnit(ctx context.Context, name string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("units").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CreateUnit - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: CreateUnit - execute insert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// CreateProfessional создает мастера салона
func (r *Repository) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professionals").
		Columns("unit_id", "name", "is_active").
		Values(p.UnitID, p.Name, p.IsActive).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// CreateService создает услугу салона. Длительность и цена могут быть не заданы
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("unit_id", "name", "duration_minutes", "price", "is_active").
		Values(s.UnitID, s.Name, s.DurationMinutes, s.Price, s.IsActive).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}
