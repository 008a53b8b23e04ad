package get_unit_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgInvalidUnitID    = "некорректный ID салона"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidTimeRange = "дата начала периода позже даты окончания"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/bookings
// Query params: professionalId, date | startDate+endDate, includeHistory (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unitID, err := handlers.PathInt64(r, "unitId")
	if err != nil {
		h.logger.Warn("GET /units/{id}/bookings - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	serviceReq, err := ToServiceRequest(unitID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /units/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListUnitBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /units/{id}/bookings - Invalid time range: unit_id=%d", unitID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /units/{id}/bookings - Failed to get bookings: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/bookings - Bookings retrieved successfully: unit_id=%d, count=%d",
		unitID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
