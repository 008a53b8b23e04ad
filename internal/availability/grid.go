// Package availability вычисляет свободные времена начала записи к мастеру.
// Все функции чистые: не ходят в БД и не читают часы.
package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateGrid строит сетку кандидатов для одного периода.
// Первый кандидат - первое кратное granularity (от полуночи) не раньше open,
// далее с шагом granularity, пока время начала строго раньше closeTime.
// Для сегодняшней даты отбрасываются кандидаты раньше now+leadMinutes,
// округленного вверх до кратного granularity.
func GenerateGrid(
	open, closeTime types.TimeString,
	granularity int,
	isToday bool,
	now time.Time,
	leadMinutes int,
) []types.TimeString {
	grid := make([]types.TimeString, 0)

	if granularity <= 0 || open.IsZero() || closeTime.IsZero() || !open.IsBefore(closeTime) {
		return grid
	}

	first := ceilTo(open.Minutes(), granularity)

	if isToday {
		minStart := ceilTo(civiltime.MinutesOfDay(now)+leadMinutes, granularity)
		if minStart > first {
			first = minStart
		}
	}

	for m := first; m < closeTime.Minutes(); m += granularity {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		grid = append(grid, slot)
	}

	return grid
}

// ceilTo округляет value вверх до ближайшего кратного step
func ceilTo(value, step int) int {
	if rem := value % step; rem != 0 {
		return value + step - rem
	}
	return value
}
