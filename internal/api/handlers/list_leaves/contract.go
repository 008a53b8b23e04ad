package list_leaves

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	ListLeaves(ctx context.Context, professionalID int64) (*models.LeaveListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
