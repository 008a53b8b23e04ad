package get_unit_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день и имеет приоритет над startDate/endDate.
func ToServiceRequest(unitID int64, query url.Values) (*models.ListUnitBookingsRequest, error) {
	req := &models.ListUnitBookingsRequest{UnitID: unitID}

	if s := query.Get("professionalId"); s != "" {
		professionalID, err := strconv.ParseInt(s, 10, 64)
		if err != nil || professionalID <= 0 {
			return nil, fmt.Errorf("invalid professionalId: %q", s)
		}
		req.ProfessionalID = &professionalID
	}

	if s := query.Get("date"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = parseOptionalDate(query.Get("startDate")); err != nil {
			return nil, err
		}
		if req.EndDate, err = parseOptionalDate(query.Get("endDate")); err != nil {
			return nil, err
		}
	}

	if s := query.Get("includeHistory"); s != "" {
		includeHistory, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeHistory value: %w", err)
		}
		req.IncludeHistory = includeHistory
	}

	return req, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
