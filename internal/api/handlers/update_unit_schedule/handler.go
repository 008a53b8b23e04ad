package update_unit_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidUnitID      = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidGranularity = "шаг сетки должен быть 10, 20 или 40 минут"
	msgInvalidPeriod      = "некорректный период работы"
	msgInvalidInput       = "некорректные параметры расписания"
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

// Handle PUT /api/v1/units/{unitId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("PUT /units/{id}/schedule - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /units/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), req.ToServiceRequest(unitID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidGranularity):
			h.logger.Warn("PUT /units/{id}/schedule - Invalid granularity: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)

		case errors.Is(err, schedule.ErrInvalidPeriod):
			h.logger.Warn("PUT /units/{id}/schedule - Invalid period: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /units/{id}/schedule - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /units/{id}/schedule - Failed to update schedule: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /units/{id}/schedule - Schedule updated: unit_id=%d, granularity=%d, periods=%d",
		unitID, result.SlotGranularityMinutes, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
