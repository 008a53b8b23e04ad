package get_unit_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const msgInvalidUnitID = "некорректный ID салона"

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

// Handle GET /api/v1/units/{unitId}/schedule
// Если настройки салона не заданы, возвращаются значения по умолчанию с defaultsApplied=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/schedule - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	result, err := h.service.GetUnitSchedule(r.Context(), unitID)
	if err != nil {
		h.logger.Error("GET /units/{id}/schedule - Failed to get schedule: unit_id=%d, error=%v", unitID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /units/{id}/schedule - Schedule retrieved: unit_id=%d, periods=%d, defaults=%t",
		unitID, len(result.Periods), result.DefaultsApplied)
	handlers.RespondJSON(w, http.StatusOK, result)
}
