package create_leave

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// CreateLeaveRequest HTTP request model. Указывается либо date, либо weekday
type CreateLeaveRequest struct {
	Date      *string `json:"date,omitempty"`
	Weekday   *int    `json:"weekday,omitempty"`
	Morning   bool    `json:"morning"`
	Afternoon bool    `json:"afternoon"`
	Evening   bool    `json:"evening"`
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateLeaveRequest) ToServiceRequest(professionalID int64) *models.CreateLeaveRequest {
	return &models.CreateLeaveRequest{
		ProfessionalID: professionalID,
		Date:           r.Date,
		Weekday:        r.Weekday,
		Morning:        r.Morning,
		Afternoon:      r.Afternoon,
		Evening:        r.Evening,
		Reason:         r.Reason,
	}
}
