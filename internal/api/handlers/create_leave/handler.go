package create_leave

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidLeave          = "некорректные параметры выходного"
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

// Handle POST /api/v1/professionals/{professionalId}/leaves
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/leaves - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req CreateLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/leaves - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLeave(r.Context(), req.ToServiceRequest(professionalID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("POST /professionals/{id}/leaves - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/leaves - Invalid leave: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidLeave)

		default:
			h.logger.Error("POST /professionals/{id}/leaves - Failed to create leave: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/leaves - Leave created: leave_id=%d, professional_id=%d", result.ID, professionalID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
