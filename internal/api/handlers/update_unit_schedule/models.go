package update_unit_schedule

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model. Отсутствующие поля не меняются,
// periods (если передан) заменяет недельное расписание целиком.
type UpdateScheduleRequest struct {
	SlotGranularityMinutes  *int                   `json:"slotGranularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int                   `json:"minBookingNoticeMinutes,omitempty"`
	Periods                 []models.PeriodRequest `json:"periods,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(unitID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UnitID:                  unitID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		Periods:                 r.Periods,
	}
}
