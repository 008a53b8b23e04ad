package get_calendar_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.Year < minYear || req.Year > maxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, req.Year)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidInput, req.Month)
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
