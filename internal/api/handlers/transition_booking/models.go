package transition_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	transitionBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string  `json:"status"` // confirmed, completed, cancelled
	Reason *string `json:"reason,omitempty"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	BookingID      int64   `json:"bookingId"`
	PreviousStatus string  `json:"previousStatus"`
	Status         string  `json:"status"`
	FinalizedAt    *string `json:"finalizedAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(bookingID, actorID int64) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID: bookingID,
		NewStatus: domain.BookingStatus(r.Status),
		Reason:    r.Reason,
		ActorID:   actorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *TransitionResponse {
	out := &TransitionResponse{
		BookingID:      resp.BookingID,
		PreviousStatus: string(resp.PreviousStatus),
		Status:         string(resp.Status),
	}
	if resp.FinalizedAt != nil {
		s := resp.FinalizedAt.Format(time.RFC3339)
		out.FinalizedAt = &s
	}
	return out
}
