package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом относительно текущего дня салона
func validateDate(date, now time.Time) error {
	if civiltime.Before(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, civiltime.FormatDate(date))
	}
	return nil
}
