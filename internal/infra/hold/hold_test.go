package hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, 3, 10, 22, 30, 0, 0, loc)
	assert.Equal(t, "hold:professional:5:2026-03-10", Key(5, date))
}

func TestNoopHolder(t *testing.T) {
	var h NoopHolder
	token, err := h.Acquire(context.Background(), 5, time.Now())
	require.NoError(t, err)
	assert.NoError(t, h.Release(context.Background(), 5, time.Now(), token))
}
