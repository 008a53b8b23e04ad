package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidUnitID         = "некорректный ID салона"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidServiceIDs     = "некорректный список услуг"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate              = "дата в прошлом"
	msgInvalidInput          = "некорректные параметры запроса"
	msgProfessionalNotFound  = "мастер не найден"
	msgProfessionalNotInUnit = "мастер не работает в этом салоне"
	msgServiceNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/professionals/{professionalId}/availability
// Query params: date (required, YYYY-MM-DD), serviceIds (optional, "1,2")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceIDs, err := handlers.QueryInt64List(r, "serviceIds")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(unitID, professionalID, serviceIDs, dateStr)
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDataUnavailable) && result != nil:
			// Закрытый ответ без свободного времени, запрос можно повторить
			h.logger.Error("GET /units/{id}/professionals/{id}/availability - Data unavailable: unit_id=%d, professional_id=%d, error=%v",
				unitID, professionalID, err)
			response := FromUseCaseResponse(result)
			response.Retryable = true
			handlers.RespondJSON(w, http.StatusServiceUnavailable, response)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotInUnit):
			h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Professional not in unit: unit_id=%d, professional_id=%d",
				unitID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotInUnit)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Service not found: unit_id=%d, service_ids=%v",
				unitID, serviceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Past date: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/professionals/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /units/{id}/professionals/{id}/availability - Failed to get slots: unit_id=%d, professional_id=%d, error=%v",
				unitID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /units/{id}/professionals/{id}/availability - Slots retrieved successfully: unit_id=%d, professional_id=%d, date=%s, slots_count=%d",
		unitID, professionalID, dateStr, result.SlotsByPeriod.Total())
	handlers.RespondJSON(w, http.StatusOK, response)
}
