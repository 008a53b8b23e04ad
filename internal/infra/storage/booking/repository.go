package booking

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// serviceIDsColumn ID услуг бронирования в порядке выбора
const serviceIDsColumn = "COALESCE((SELECT array_agg(bs.service_id ORDER BY bs.position) " +
	"FROM booking_services bs WHERE bs.booking_id = b.id), '{}') AS service_ids"

var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.professional_id",
	"b.unit_id",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.total_price",
	"b.notes",
	"b.created_at",
	"b.updated_at",
	serviceIDsColumn,
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и его услуги.
// Вызывается внутри транзакции; пересечение с другой активной записью отклоняется
// ограничением bookings_no_overlap и возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"professional_id",
			"unit_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"total_price",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.ProfessionalID,
			booking.UnitID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.TotalPrice,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, wrapQueryErr("Create", "execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.ServiceIDs) == 0 {
		return booking, nil
	}

	servicesInsert := psqlbuilder.Insert("booking_services").Columns("booking_id", "service_id", "position")
	for i, serviceID := range booking.ServiceIDs {
		servicesInsert = servicesInsert.Values(booking.ID, serviceID, i)
	}

	query, args, err = servicesInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build services insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, wrapQueryErr("Create", "insert booking services", err)
	}

	return booking, nil
}

// GetByID получает активное бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if IsConflict(err) {
			return nil, wrapQueryErr("GetByID", "scan booking", err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByProfessionalAndDate получает активные бронирования мастера на дату
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное создание ждало коммита
func (r *Repository) GetActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.Booking, error) {
	return r.getActive(ctx, "GetActiveByProfessionalAndDate", professionalID, date, date)
}

// GetActiveByProfessionalAndRange получает активные бронирования мастера в диапазоне дат включительно
func (r *Repository) GetActiveByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Booking, error) {
	return r.getActive(ctx, "GetActiveByProfessionalAndRange", professionalID, from, to)
}

func (r *Repository) getActive(ctx context.Context, op string, professionalID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.professional_id": professionalID}).
		Where(squirrel.Eq{"b.status": activeStatusStrings()}).
		Where(squirrel.GtOrEq{"b.booking_date": from}).
		Where(squirrel.LtOrEq{"b.booking_date": to}).
		OrderBy("b.booking_date ASC", "b.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr(op, "execute query", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		if IsConflict(err) {
			return nil, wrapQueryErr(op, "rows error", err)
		}
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус активного бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsActive() {
		return fmt.Errorf("%w: UpdateStatus - %s must be moved to history", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MoveToHistory копирует бронирование в booking_history и удаляет его из bookings.
// Должен вызываться внутри транзакции, иначе при ошибке удаления запись окажется в обеих таблицах.
func (r *Repository) MoveToHistory(ctx context.Context, h *domain.BookingHistory) error {
	if !h.FinalStatus.IsFinal() {
		return fmt.Errorf("%w: MoveToHistory - %s is not final", ErrInvalidStatus, h.FinalStatus)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns(
			"id",
			"customer_id",
			"professional_id",
			"unit_id",
			"booking_date",
			"start_time",
			"end_time",
			"service_ids",
			"total_price",
			"notes",
			"final_status",
			"reason",
			"finalized_by",
			"created_at",
		).
		Values(
			h.ID,
			h.CustomerID,
			h.ProfessionalID,
			h.UnitID,
			h.BookingDate,
			h.StartTime,
			h.EndTime,
			pq.Array(h.ServiceIDs),
			h.TotalPrice,
			h.Notes,
			h.FinalStatus,
			h.Reason,
			h.FinalizedBy,
			h.CreatedAt,
		).
		Suffix("RETURNING finalized_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MoveToHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.FinalizedAt); err != nil {
		return fmt.Errorf("%w: MoveToHistory - insert history: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MoveToHistory - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MoveToHistory - delete booking: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MoveToHistory - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetHistoryByID получает завершенное или отмененное бронирование
func (r *Repository) GetHistoryByID(ctx context.Context, id int64) (*domain.BookingHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"professional_id",
		"unit_id",
		"booking_date",
		"start_time",
		"end_time",
		"service_ids",
		"total_price",
		"notes",
		"final_status",
		"reason",
		"finalized_by",
		"created_at",
		"finalized_at",
	).
		From("booking_history").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByID - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.BookingHistory
	var serviceIDs pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.CustomerID,
		&h.ProfessionalID,
		&h.UnitID,
		&h.BookingDate,
		&h.StartTime,
		&h.EndTime,
		&serviceIDs,
		&h.TotalPrice,
		&h.Notes,
		&h.FinalStatus,
		&h.Reason,
		&h.FinalizedBy,
		&h.CreatedAt,
		&h.FinalizedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByID - scan row: %v", ErrScanRow, err)
	}

	h.ServiceIDs = []int64(serviceIDs)
	h.Status = h.FinalStatus
	h.UpdatedAt = h.FinalizedAt

	return &h, nil
}

// ListViews возвращает бронирования для админских списков одним запросом на таблицу:
// имя мастера и названия услуг подтягиваются JOIN'ом, без дозапросов по каждой записи.
// Сортировка: сначала новые (дата и время по убыванию).
func (r *Repository) ListViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error) {
	views, err := r.listActiveViews(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IncludeHistory {
		history, err := r.listHistoryViews(ctx, filter)
		if err != nil {
			return nil, err
		}
		views = append(views, history...)
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i], views[j]
			if !a.BookingDate.Equal(b.BookingDate) {
				return a.BookingDate.After(b.BookingDate)
			}
			return a.StartTime.IsAfter(b.StartTime)
		})
	}

	return views, nil
}

func (r *Repository) listActiveViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(
		"b.id",
		"b.customer_id",
		"b.professional_id",
		"b.unit_id",
		"b.booking_date",
		"b.start_time",
		"b.end_time",
		"b.status",
		"b.total_price",
		"b.notes",
		"b.created_at",
		"b.updated_at",
		"COALESCE(array_agg(bs.service_id ORDER BY bs.position) FILTER (WHERE bs.service_id IS NOT NULL), '{}')",
		"p.name",
		"COALESCE(array_agg(s.name ORDER BY bs.position) FILTER (WHERE s.id IS NOT NULL), '{}')",
		"NULL::timestamptz",
		"NULL::text",
	).
		From("bookings b").
		Join("professionals p ON p.id = b.professional_id").
		LeftJoin("booking_services bs ON bs.booking_id = b.id").
		LeftJoin("services s ON s.id = bs.service_id").
		GroupBy("b.id", "p.name").
		OrderBy("b.booking_date DESC", "b.start_time DESC"), "b", filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - build active query: %v", ErrBuildQuery, err)
	}

	return r.queryViews(ctx, executor, "ListViews", query, args)
}

func (r *Repository) listHistoryViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(
		"h.id",
		"h.customer_id",
		"h.professional_id",
		"h.unit_id",
		"h.booking_date",
		"h.start_time",
		"h.end_time",
		"h.final_status",
		"h.total_price",
		"h.notes",
		"h.created_at",
		"h.finalized_at",
		"h.service_ids",
		"COALESCE(p.name, '')",
		"ARRAY(SELECT s.name FROM unnest(h.service_ids) WITH ORDINALITY AS u(service_id, ord) "+
			"JOIN services s ON s.id = u.service_id ORDER BY u.ord)",
		"h.finalized_at",
		"h.reason",
	).
		From("booking_history h").
		LeftJoin("professionals p ON p.id = h.professional_id").
		OrderBy("h.booking_date DESC", "h.start_time DESC"), "h", filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - build history query: %v", ErrBuildQuery, err)
	}

	return r.queryViews(ctx, executor, "ListViews", query, args)
}

func (r *Repository) queryViews(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.BookingView, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	views := make([]*domain.BookingView, 0)
	for rows.Next() {
		var v domain.BookingView
		var serviceIDs pq.Int64Array
		var serviceNames pq.StringArray
		var createdAt, updatedAt, finalizedAt sql.NullTime
		var reason sql.NullString

		err := rows.Scan(
			&v.ID,
			&v.CustomerID,
			&v.ProfessionalID,
			&v.UnitID,
			&v.BookingDate,
			&v.StartTime,
			&v.EndTime,
			&v.Status,
			&v.TotalPrice,
			&v.Notes,
			&createdAt,
			&updatedAt,
			&serviceIDs,
			&v.ProfessionalName,
			&serviceNames,
			&finalizedAt,
			&reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		v.CreatedAt = createdAt.Time
		v.UpdatedAt = updatedAt.Time
		v.ServiceIDs = []int64(serviceIDs)
		v.ServiceNames = []string(serviceNames)
		if finalizedAt.Valid {
			t := finalizedAt.Time
			v.FinalizedAt = &t
		}
		if reason.Valid {
			s := reason.String
			v.Reason = &s
		}

		views = append(views, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return views, nil
}

// applyFilter добавляет условия фильтра к запросу по таблице с алиасом alias
func applyFilter(b squirrel.SelectBuilder, alias string, filter domain.BookingsFilter) squirrel.SelectBuilder {
	col := func(name string) string { return alias + "." + name }

	if filter.UnitID != nil {
		b = b.Where(squirrel.Eq{col("unit_id"): *filter.UnitID})
	}
	if filter.CustomerID != nil {
		b = b.Where(squirrel.Eq{col("customer_id"): *filter.CustomerID})
	}
	if filter.ProfessionalID != nil {
		b = b.Where(squirrel.Eq{col("professional_id"): *filter.ProfessionalID})
	}
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{col("booking_date"): *filter.StartDate})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{col("booking_date"): *filter.EndDate})
	}
	return b
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку с колонками bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var serviceIDs pq.Int64Array

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProfessionalID,
		&booking.UnitID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TotalPrice,
		&booking.Notes,
		&createdAt,
		&updatedAt,
		&serviceIDs,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.ServiceIDs = []int64(serviceIDs)

	return &booking, nil
}

func activeStatusStrings() []string {
	result := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		result[i] = string(s)
	}
	return result
}
