package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  *sql.TxOptions
	calls int
	err   error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestDo_Commit(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.opts.Isolation)
}

func TestDoSerializable_RollbackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	wantErr := errors.New("slot taken")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)
}

func TestDo_NestedReusesOuterTx(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.calls)
	assert.True(t, db.opts.ReadOnly)
}

func TestDo_BeginError(t *testing.T) {
	db := &fakeBeginner{err: errors.New("pool exhausted")}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})
	assert.ErrorContains(t, err, "pool exhausted")
}

func TestDo_RollbackOnPanic(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.True(t, db.tx.rolledBack)
}
