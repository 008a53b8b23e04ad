package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на получение доступных времен записи
type Request struct {
	UnitID         int64     // ID салона
	ProfessionalID int64     // ID мастера
	ServiceIDs     []int64   // Выбранные услуги в порядке выбора
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со свободными временами по периодам
type Response struct {
	Date                   time.Time
	UnitID                 int64
	ProfessionalID         int64
	ServiceIDs             []int64
	TotalDurationMinutes   int
	SlotsNeeded            int
	SlotGranularityMinutes int
	PeriodAvailability     domain.PeriodFlags
	SlotsByPeriod          domain.PeriodSlots
	// DefaultsApplied true, если для длительности услуг использованы значения по умолчанию
	DefaultsApplied bool
}

// failClosed возвращает ответ без единого свободного времени
func failClosed(req *Request) *Response {
	return &Response{
		Date:           req.Date,
		UnitID:         req.UnitID,
		ProfessionalID: req.ProfessionalID,
		ServiceIDs:     req.ServiceIDs,
		SlotsByPeriod:  domain.EmptyPeriodSlots(),
	}
}
