package create_leave

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateLeave(ctx context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
