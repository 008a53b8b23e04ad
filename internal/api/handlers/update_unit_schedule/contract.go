package update_unit_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
