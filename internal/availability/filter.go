package availability

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// FilterAvailable оставляет кандидатов, с которых можно начать запись длительностью totalDuration.
//
// Кандидат с индексом i подходит, если:
//   - в сетке есть slotsNeeded подряд идущих ячеек начиная с i, каждая ровно через granularity;
//   - интервал [start, start+totalDuration) не пересекается ни с одним активным бронированием.
//
// Пересечение проверяется по полуоткрытым интервалам: соседние записи не конфликтуют.
// Порядок сетки сохраняется.
func FilterAvailable(
	grid []types.TimeString,
	slotsNeeded int,
	granularity int,
	totalDuration int,
	bookings []*domain.Booking,
	onLeave bool,
) []types.TimeString {
	result := make([]types.TimeString, 0)

	if onLeave || slotsNeeded < 1 || granularity <= 0 {
		return result
	}

	for i := 0; i+slotsNeeded <= len(grid); i++ {
		if !isContiguous(grid[i:i+slotsNeeded], granularity) {
			continue
		}

		start := grid[i].Minutes()
		end := start + totalDuration
		if overlapsAny(start, end, bookings) {
			continue
		}

		result = append(result, grid[i])
	}

	return result
}

// isContiguous проверяет, что ячейки идут без разрывов
func isContiguous(run []types.TimeString, granularity int) bool {
	for j := 1; j < len(run); j++ {
		if run[j].Minutes()-run[j-1].Minutes() != granularity {
			return false
		}
	}
	return true
}

// overlapsAny проверяет пересечение с активными бронированиями
func overlapsAny(start, end int, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		// Неактивные бронирования время не занимают
		if b == nil || !b.IsActive() {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime.Minutes(), b.EndTime.Minutes()) {
			return true
		}
	}
	return false
}
