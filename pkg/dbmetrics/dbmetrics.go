// Package dbmetrics оборачивает *sql.DB, замеряя запросы, и прокидывает транзакцию через context
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и их оберток
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Observer принимает замеры запросов. Реализуется *metrics.Metrics
type Observer interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBPoolStats(open, inUse, idle int)
}

// DB обертка над *sql.DB с замером времени запросов
type DB struct {
	db       *sql.DB
	observer Observer
}

// Wrap оборачивает соединение. observer может быть nil, тогда метрики не пишутся
func Wrap(db *sql.DB, observer Observer) *DB {
	return &DB{db: db, observer: observer}
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveDBQuery(operationOf(query), time.Since(start), err)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx открывает транзакцию, запросы в которой тоже замеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{Tx: tx, observe: d.observe}, nil
}

// PingContext проверяет соединение
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает пул
func (d *DB) Close() error {
	return d.db.Close()
}

// Unwrap возвращает исходный *sql.DB (нужен для goose)
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// CollectPoolStats периодически публикует состояние пула, пока ctx не отменен
func (d *DB) CollectPoolStats(ctx context.Context, interval time.Duration) {
	if d.observer == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats := d.db.Stats()
		d.observer.SetDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SqlTxWrapper адаптирует *sql.Tx к TxExecutor
type SqlTxWrapper struct {
	Tx      *sql.Tx
	observe func(query string, start time.Time, err error)
}

// WrapTx оборачивает транзакцию без метрик
func WrapTx(tx *sql.Tx) *SqlTxWrapper {
	return &SqlTxWrapper{Tx: tx}
}

func (w *SqlTxWrapper) record(query string, start time.Time, err error) {
	if w.observe != nil {
		w.observe(query, start, err)
	}
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.Tx.ExecContext(ctx, query, args...)
	w.record(query, start, err)
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.Tx.QueryContext(ctx, query, args...)
	w.record(query, start, err)
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.Tx.QueryRowContext(ctx, query, args...)
	w.record(query, start, row.Err())
	return row
}

func (w *SqlTxWrapper) Commit() error {
	return w.Tx.Commit()
}

func (w *SqlTxWrapper) Rollback() error {
	return w.Tx.Rollback()
}

// operationOf возвращает первое ключевое слово запроса в нижнем регистре
func operationOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	op := strings.ToLower(fields[0])
	switch op {
	case "select", "insert", "update", "delete", "with":
		return op
	default:
		return "other"
	}
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok
}

// IsInTransaction возвращает true, если в контексте есть открытая транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, иначе fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}
