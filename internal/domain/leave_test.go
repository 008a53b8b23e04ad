package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveLeave(t *testing.T) {
	tuesday := date(2026, 3, 10)
	require.Equal(t, time.Tuesday, tuesday.Weekday())

	leaves := []*LeavePeriod{
		{ID: 1, Date: ptr.Ptr(tuesday), Morning: true},
		{ID: 2, Weekday: ptr.Ptr(time.Tuesday), Evening: true},
		{ID: 3, Date: ptr.Ptr(date(2026, 3, 11)), Afternoon: true},
		nil,
	}

	blocked := ResolveLeave(leaves, tuesday)
	assert.Equal(t, PeriodFlags{Morning: true, Evening: true}, blocked)
	assert.False(t, blocked.All())

	// следующий вторник: только повторяющийся выходной
	assert.Equal(t, PeriodFlags{Evening: true}, ResolveLeave(leaves, date(2026, 3, 17)))
}

func TestResolveLeave_UnionCoversWholeDay(t *testing.T) {
	d := date(2026, 5, 4)
	leaves := []*LeavePeriod{
		{Date: ptr.Ptr(d), Morning: true, Afternoon: true},
		{Weekday: ptr.Ptr(d.Weekday()), Evening: true},
	}
	assert.True(t, ResolveLeave(leaves, d).All())
}

func TestLeavePeriod_MatchesIgnoresClockAndZone(t *testing.T) {
	leave := &LeavePeriod{Date: ptr.Ptr(date(2026, 3, 10))}
	loc := time.FixedZone("BRT", -3*60*60)
	assert.True(t, leave.Matches(time.Date(2026, 3, 10, 23, 0, 0, 0, loc)))
	assert.False(t, leave.Matches(date(2026, 3, 11)))
	assert.False(t, (&LeavePeriod{}).Matches(date(2026, 3, 10)))
}

func TestOperatingPeriod_Bounds(t *testing.T) {
	open := types.MustTimeString("08:00")
	closeTime := types.MustTimeString("12:00")

	p := &OperatingPeriod{IsOpen: true, OpenTime: &open, CloseTime: &closeTime}
	o, c, ok := p.Bounds()
	require.True(t, ok)
	assert.Equal(t, "08:00", o.String())
	assert.Equal(t, "12:00", c.String())

	closed := &OperatingPeriod{IsOpen: false, OpenTime: &open, CloseTime: &closeTime}
	_, _, ok = closed.Bounds()
	assert.False(t, ok)

	inverted := &OperatingPeriod{IsOpen: true, OpenTime: &closeTime, CloseTime: &open}
	_, _, ok = inverted.Bounds()
	assert.False(t, ok)

	missing := &OperatingPeriod{IsOpen: true, OpenTime: &open}
	_, _, ok = missing.Bounds()
	assert.False(t, ok)
}

func TestUnitSettings_Normalize(t *testing.T) {
	s := &UnitSettings{SlotGranularityMinutes: 15, MinBookingNoticeMinutes: -5}
	s.Normalize()
	assert.Equal(t, DefaultSlotGranularityMinutes, s.SlotGranularityMinutes)
	assert.Equal(t, DefaultMinBookingNoticeMinutes, s.MinBookingNoticeMinutes)

	ok := &UnitSettings{SlotGranularityMinutes: 40, MinBookingNoticeMinutes: 0}
	ok.Normalize()
	assert.Equal(t, 40, ok.SlotGranularityMinutes)
	assert.Equal(t, 0, ok.MinBookingNoticeMinutes)
}
