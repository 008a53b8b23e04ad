package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_NowInLocation(t *testing.T) {
	clock, err := NewClock("America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", clock.Now().Location().String())

	_, err = NewClock("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestSameDayAcrossZones(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)
	civil, err := ParseDate("2026-03-10")
	require.NoError(t, err)

	assert.True(t, SameDay(civil, late))
	assert.False(t, SameDay(civil, late.UTC()))
	assert.Equal(t, "2026-03-10", FormatDate(late))
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2028, time.February)
	assert.Equal(t, "2028-02-01", FormatDate(first))
	assert.Equal(t, "2028-02-29", FormatDate(last))
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 9*60+47, MinutesOfDay(time.Date(2026, 1, 1, 9, 47, 59, 0, time.UTC)))
}

func TestBefore(t *testing.T) {
	a := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 2, 1, 0, 0, 0, time.UTC)
	assert.True(t, Before(a, b))
	assert.False(t, Before(b, a))
	assert.False(t, Before(a, a))
}
