package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestGenerateGrid(t *testing.T) {
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		open, close string
		granularity int
		isToday     bool
		now         time.Time
		want        []string
	}{
		{
			name: "aligned window", open: "08:00", close: "09:00", granularity: 20,
			want: []string{"08:00", "08:20", "08:40"},
		},
		{
			name: "open rounded up to granularity", open: "08:05", close: "09:00", granularity: 20,
			want: []string{"08:20", "08:40"},
		},
		{
			name: "last start strictly before close", open: "08:00", close: "08:50", granularity: 40,
			want: []string{"08:00", "08:40"},
		},
		{
			name: "today truncation 09:47", open: "08:00", close: "11:00", granularity: 20,
			isToday: true, now: time.Date(2026, 3, 10, 9, 47, 30, 0, time.UTC),
			want: []string{"10:20", "10:40"},
		},
		{
			name: "today on exact boundary", open: "08:00", close: "09:00", granularity: 10,
			isToday: true, now: time.Date(2026, 3, 10, 8, 10, 0, 0, time.UTC),
			want: []string{"08:30", "08:40", "08:50"},
		},
		{
			name: "today after close", open: "08:00", close: "12:00", granularity: 20,
			isToday: true, now: noon, want: []string{},
		},
		{
			name: "not today ignores now", open: "08:00", close: "08:40", granularity: 20,
			isToday: false, now: noon, want: []string{"08:00", "08:20"},
		},
		{
			name: "inverted window", open: "12:00", close: "08:00", granularity: 20, want: []string{},
		},
		{
			name: "equal bounds", open: "12:00", close: "12:00", granularity: 20, want: []string{},
		},
		{
			name: "until midnight", open: "23:00", close: "24:00", granularity: 40,
			want: []string{"23:20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateGrid(ts(tt.open), ts(tt.close), tt.granularity, tt.isToday, tt.now, 20)
			assert.Equal(t, tt.want, strs(got))
		})
	}
}

func TestGenerateGrid_Alignment(t *testing.T) {
	for _, g := range []int{10, 20, 40} {
		grid := GenerateGrid(ts("07:13"), ts("21:00"), g, false, time.Time{}, 0)
		for i, slot := range grid {
			assert.Zero(t, slot.Minutes()%g, "slot %s not aligned to %d", slot, g)
			assert.GreaterOrEqual(t, slot.Minutes(), 7*60+13)
			assert.Less(t, slot.Minutes(), 21*60)
			if i > 0 {
				assert.Equal(t, g, slot.Minutes()-grid[i-1].Minutes())
			}
		}
	}
}

func TestGenerateGrid_ZeroTimes(t *testing.T) {
	assert.Empty(t, GenerateGrid(ts("08:00"), ts("09:00"), 0, false, time.Time{}, 0))
	assert.Empty(t, GenerateGrid(types.TimeString{}, ts("09:00"), 20, false, time.Time{}, 0))
}
