package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
	committed bool
}

func (f *fakeTx) Commit() error   { f.committed = true; return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeDB struct{ DBExecutor }

func TestGetExecutor(t *testing.T) {
	fallback := &fakeDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, fallback, GetExecutor(ctx, fallback))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, fallback))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("  SELECT id FROM bookings"))
	assert.Equal(t, "insert", operationOf("INSERT INTO bookings"))
	assert.Equal(t, "other", operationOf("CREATE EXTENSION btree_gist"))
	assert.Equal(t, "unknown", operationOf(""))
}

func TestWrap_NilObserver(t *testing.T) {
	d := Wrap(&sql.DB{}, nil)
	assert.NotPanics(t, func() {
		d.CollectPoolStats(context.Background(), 0)
	})
}
