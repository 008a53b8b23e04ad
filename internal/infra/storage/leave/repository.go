package leave

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var leaveColumns = []string{
	"id",
	"professional_id",
	"leave_date",
	"weekday",
	"morning",
	"afternoon",
	"evening",
	"reason",
	"created_at",
}

// Repository репозиторий выходных мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessional получает все записи о выходных мастера (разовые и еженедельные)
// через хранимую функцию get_professional_leaves
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.LeavePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leaveColumns...).
		From("get_professional_leaves(?)").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}
	args = append(args, professionalID)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves := make([]*domain.LeavePeriod, 0)
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProfessional - scan row: %w", ErrScanRow, err)
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - rows error: %w", ErrScanRow, err)
	}

	return leaves, nil
}

// GetByID получает запись о выходном по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LeavePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leaveColumns...).
		From("leave_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	leave, err := scanLeave(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLeaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan leave: %v", ErrScanRow, err)
	}

	return leave, nil
}

// Create создает запись о выходном
func (r *Repository) Create(ctx context.Context, leave *domain.LeavePeriod) (*domain.LeavePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var weekday *int
	if leave.Weekday != nil {
		w := int(*leave.Weekday)
		weekday = &w
	}

	query, args, err := psqlbuilder.Insert("leave_periods").
		Columns(
			"professional_id",
			"leave_date",
			"weekday",
			"morning",
			"afternoon",
			"evening",
			"reason",
		).
		Values(
			leave.ProfessionalID,
			leave.Date,
			weekday,
			leave.Morning,
			leave.Afternoon,
			leave.Evening,
			leave.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&leave.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	leave.CreatedAt = createdAt.Time

	return leave, nil
}

// Delete удаляет запись о выходном мастера
func (r *Repository) Delete(ctx context.Context, professionalID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("leave_periods").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLeaveNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLeave(row rowScanner) (*domain.LeavePeriod, error) {
	var leave domain.LeavePeriod
	var date sql.NullTime
	var weekday sql.NullInt16
	var createdAt sql.NullTime

	err := row.Scan(
		&leave.ID,
		&leave.ProfessionalID,
		&date,
		&weekday,
		&leave.Morning,
		&leave.Afternoon,
		&leave.Evening,
		&leave.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		d := date.Time
		leave.Date = &d
	}
	if weekday.Valid {
		w := time.Weekday(weekday.Int16)
		leave.Weekday = &w
	}
	leave.CreatedAt = createdAt.Time

	return &leave, nil
}
