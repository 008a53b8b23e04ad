package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrUnknownService выбранная услуга не найдена среди услуг салона
var ErrUnknownService = errors.New("availability: unknown service")

// UniqueIDs удаляет повторы, сохраняя порядок выбора
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// OrderServices раскладывает найденные услуги в порядке выбора.
// Повторные ID пропускаются; если какой-то ID не найден, возвращается ErrUnknownService
func OrderServices(ids []int64, services []*domain.Service) ([]*domain.Service, error) {
	byID := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	ids = UniqueIDs(ids)
	ordered := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrUnknownService, id)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
