package list_leaves

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgProfessionalNotFound  = "мастер не найден"
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

// Handle GET /api/v1/professionals/{professionalId}/leaves
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/leaves - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.service.ListLeaves(r.Context(), professionalID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/leaves - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/leaves - Failed to list leaves: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/leaves - Leaves retrieved: professional_id=%d, count=%d", professionalID, len(result.Leaves))
	handlers.RespondJSON(w, http.StatusOK, result)
}
