// Package migrator применяет встроенные миграции goose
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger Logger
}

// New создаёт мигратор для миграций из fsys (корень каталога - файлы *.sql)
func New(db *sql.DB, fsys fs.FS, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())

	return &Migrator{db: db, fsys: fsys, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("Migrator: applying database migrations")

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	m.logger.Info("Migrator: schema is at version %d", version)
	return nil
}
