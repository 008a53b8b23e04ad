package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidDate           = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput          = "некорректные данные бронирования"
	msgInvalidBookingDate    = "некорректная дата бронирования"
	msgSlotNotAvailable      = "выбранное время больше недоступно"
	msgSlotBeingBooked       = "это время сейчас бронирует другой клиент, попробуйте еще раз"
	msgProfessionalNotFound  = "мастер не найден"
	msgProfessionalNotInUnit = "мастер не работает в этом салоне"
	msgServiceNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, professional_id=%d, date=%s, start=%s",
				userID, req.ProfessionalID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotBeingBooked):
			h.logger.Warn("POST /bookings - Slot is being booked: user_id=%d, professional_id=%d, date=%s",
				userID, req.ProfessionalID, req.BookingDate)
			handlers.RespondConflict(w, msgSlotBeingBooked)

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			h.logger.Warn("POST /bookings - Professional not found: professional_id=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createBooking.ErrProfessionalNotInUnit):
			h.logger.Warn("POST /bookings - Professional not in unit: unit_id=%d, professional_id=%d", req.UnitID, req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotInUnit)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: unit_id=%d, service_ids=%v", req.UnitID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, unit_id=%d, error=%v",
				userID, req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, unit_id=%d",
		result.ID, userID, req.UnitID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
