package get_calendar_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса календаря на месяц
type Request struct {
	UnitID         int64
	ProfessionalID int64
	ServiceIDs     []int64
	Year           int
	Month          time.Month
}

// Response модель ответа с классификацией каждого дня месяца
type Response struct {
	UnitID               int64
	ProfessionalID       int64
	Year                 int
	Month                time.Month
	TotalDurationMinutes int
	SlotsNeeded          int
	Days                 []Day
}

// Day статус одного дня
type Day struct {
	Date               time.Time
	Status             domain.DayStatus
	SlotsCount         int
	PeriodAvailability domain.PeriodFlags
}
