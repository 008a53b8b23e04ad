package delete_leave

import "context"

type ScheduleService interface {
	DeleteLeave(ctx context.Context, leaveID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
