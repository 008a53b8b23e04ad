package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                   string             `json:"date"`
	UnitID                 int64              `json:"unitId"`
	ProfessionalID         int64              `json:"professionalId"`
	ServiceIDs             []int64            `json:"serviceIds"`
	TotalDurationMinutes   int                `json:"totalDurationMinutes"`
	SlotsNeeded            int                `json:"slotsNeeded"`
	SlotGranularityMinutes int                `json:"slotGranularityMinutes"`
	PeriodAvailability     PeriodAvailability `json:"periodAvailability"`
	SlotsByPeriod          SlotsByPeriod      `json:"slotsByPeriod"`
	DefaultsApplied        bool               `json:"defaultsApplied"`
	Retryable              bool               `json:"retryable,omitempty"`
}

// PeriodAvailability признак наличия свободного времени в каждом периоде
type PeriodAvailability struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
	Evening   bool `json:"evening"`
}

// SlotsByPeriod свободные времена начала по периодам
type SlotsByPeriod struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(unitID, professionalID int64, serviceIDs []int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UnitID:         unitID,
		ProfessionalID: professionalID,
		ServiceIDs:     serviceIDs,
		Date:           date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	serviceIDs := resp.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	return &AvailabilityResponse{
		Date:                   resp.Date.Format(domain.DateFormat),
		UnitID:                 resp.UnitID,
		ProfessionalID:         resp.ProfessionalID,
		ServiceIDs:             serviceIDs,
		TotalDurationMinutes:   resp.TotalDurationMinutes,
		SlotsNeeded:            resp.SlotsNeeded,
		SlotGranularityMinutes: resp.SlotGranularityMinutes,
		PeriodAvailability: PeriodAvailability{
			Morning:   resp.PeriodAvailability.Morning,
			Afternoon: resp.PeriodAvailability.Afternoon,
			Evening:   resp.PeriodAvailability.Evening,
		},
		SlotsByPeriod: SlotsByPeriod{
			Morning:   formatSlots(resp.SlotsByPeriod.Morning),
			Afternoon: formatSlots(resp.SlotsByPeriod.Afternoon),
			Evening:   formatSlots(resp.SlotsByPeriod.Evening),
		},
		DefaultsApplied: resp.DefaultsApplied,
	}
}

func formatSlots(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
