package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if civiltime.Before(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, civiltime.FormatDate(date))
	}
	return nil
}

// totalPrice суммирует цены услуг. Услуги без цены считаются бесплатными, их ID возвращаются отдельно
func totalPrice(services []*domain.Service) (float64, []int64) {
	var total float64
	missing := make([]int64, 0)
	for _, s := range services {
		if s.Price == nil {
			missing = append(missing, s.ID)
			continue
		}
		total += *s.Price
	}
	return total, missing
}
