package availability

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// SlotCount результат расчета длительности выбранных услуг
type SlotCount struct {
	TotalDurationMinutes int
	SlotsNeeded          int
	// DefaultedServiceIDs услуги с некорректной длительностью, для которых взято значение по умолчанию
	DefaultedServiceIDs []int64
	// EmptySelection true, если услуги не выбраны и взята длительность по умолчанию
	EmptySelection bool
}

// HasDefaults возвращает true, если при расчете применялись значения по умолчанию
func (c SlotCount) HasDefaults() bool {
	return c.EmptySelection || len(c.DefaultedServiceIDs) > 0
}

// ResolveSlotCount суммирует длительность услуг и переводит ее в количество ячеек сетки.
// SlotsNeeded = ceil(total / granularity), минимум 1.
func ResolveSlotCount(services []*domain.Service, granularity int) SlotCount {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	result := SlotCount{DefaultedServiceIDs: []int64{}}

	if len(services) == 0 {
		result.EmptySelection = true
		result.TotalDurationMinutes = domain.DefaultServiceDurationMinutes
	}

	for _, s := range services {
		if s == nil {
			result.TotalDurationMinutes += domain.DefaultServiceDurationMinutes
			continue
		}
		if !s.HasValidDuration() {
			result.TotalDurationMinutes += domain.DefaultServiceDurationMinutes
			result.DefaultedServiceIDs = append(result.DefaultedServiceIDs, s.ID)
			continue
		}
		result.TotalDurationMinutes += *s.DurationMinutes
	}

	result.SlotsNeeded = (result.TotalDurationMinutes + granularity - 1) / granularity
	if result.SlotsNeeded < 1 {
		result.SlotsNeeded = 1
	}

	return result
}
