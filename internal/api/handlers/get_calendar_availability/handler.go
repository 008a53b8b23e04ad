package get_calendar_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_calendar_availability"
)

const (
	msgInvalidUnitID         = "некорректный ID салона"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidServiceIDs     = "некорректный список услуг"
	msgInvalidMonth          = "некорректный месяц, ожидается YYYY-MM"
	msgInvalidInput          = "некорректные параметры запроса"
	msgProfessionalNotFound  = "мастер не найден"
	msgProfessionalNotInUnit = "мастер не работает в этом салоне"
	msgServiceNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/professionals/{professionalId}/calendar
// Query params: month (required, YYYY-MM), serviceIds (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceIDs, err := handlers.QueryInt64List(r, "serviceIds")
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	month := r.URL.Query().Get("month")
	useCaseReq, err := ToUseCaseRequest(unitID, professionalID, serviceIDs, month)
	if err != nil {
		h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Invalid month %q: %v", month, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrDataUnavailable) && result != nil:
			h.logger.Error("GET /units/{id}/professionals/{id}/calendar - Data unavailable: unit_id=%d, professional_id=%d, error=%v",
				unitID, professionalID, err)
			response := FromUseCaseResponse(result)
			response.Retryable = true
			handlers.RespondJSON(w, http.StatusServiceUnavailable, response)

		case errors.Is(err, getCalendar.ErrProfessionalNotFound):
			h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getCalendar.ErrProfessionalNotInUnit):
			h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Professional not in unit: unit_id=%d, professional_id=%d",
				unitID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotInUnit)

		case errors.Is(err, getCalendar.ErrServiceNotFound):
			h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Service not found: service_ids=%v", serviceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/professionals/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /units/{id}/professionals/{id}/calendar - Failed to build calendar: unit_id=%d, professional_id=%d, error=%v",
				unitID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/professionals/{id}/calendar - Calendar built: unit_id=%d, professional_id=%d, month=%s",
		unitID, professionalID, month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
