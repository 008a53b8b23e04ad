package delete_leave

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidLeaveID = "некорректный ID выходного"
	msgNotFound       = "выходной не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/leaves/{leaveId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leaveID, err := handlers.PathInt64(r, "leaveId")
	if err != nil {
		h.logger.Warn("DELETE /leaves/{id} - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	if err := h.service.DeleteLeave(r.Context(), leaveID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrLeaveNotFound):
			h.logger.Warn("DELETE /leaves/{id} - Leave not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /leaves/{id} - Failed to delete leave: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /leaves/{id} - Leave deleted: leave_id=%d", leaveID)
	w.WriteHeader(http.StatusNoContent)
}
