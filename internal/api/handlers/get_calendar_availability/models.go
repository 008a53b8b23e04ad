package get_calendar_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_calendar_availability"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	UnitID               int64         `json:"unitId"`
	ProfessionalID       int64         `json:"professionalId"`
	Month                string        `json:"month"` // "2026-03"
	TotalDurationMinutes int           `json:"totalDurationMinutes"`
	SlotsNeeded          int           `json:"slotsNeeded"`
	Days                 []DayResponse `json:"days"`
	Retryable            bool          `json:"retryable,omitempty"`
}

// DayResponse статус одного дня месяца
type DayResponse struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	SlotsCount int    `json:"slotsCount"`
	Morning    bool   `json:"morning"`
	Afternoon  bool   `json:"afternoon"`
	Evening    bool   `json:"evening"`
}

// ToUseCaseRequest создает запрос use case. month в формате YYYY-MM
func ToUseCaseRequest(unitID, professionalID int64, serviceIDs []int64, month string) (*getCalendar.Request, error) {
	t, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		return nil, err
	}

	return &getCalendar.Request{
		UnitID:         unitID,
		ProfessionalID: professionalID,
		ServiceIDs:     serviceIDs,
		Year:           t.Year(),
		Month:          t.Month(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DayResponse{
			Date:       d.Date.Format(domain.DateFormat),
			Status:     string(d.Status),
			SlotsCount: d.SlotsCount,
			Morning:    d.PeriodAvailability.Morning,
			Afternoon:  d.PeriodAvailability.Afternoon,
			Evening:    d.PeriodAvailability.Evening,
		}
	}

	return &CalendarResponse{
		UnitID:               resp.UnitID,
		ProfessionalID:       resp.ProfessionalID,
		Month:                time.Date(resp.Year, resp.Month, 1, 0, 0, 0, 0, time.UTC).Format(domain.MonthFormat),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		SlotsNeeded:          resp.SlotsNeeded,
		Days:                 days,
	}
}
