package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date format")
	errInvalidTime = errors.New("invalid time format")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UnitID         int64   `json:"unitId"`
	ProfessionalID int64   `json:"professionalId"`
	ServiceIDs     []int64 `json:"serviceIds"`
	BookingDate    string  `json:"bookingDate"`       // "2026-03-10"
	StartTime      string  `json:"startTime"`         // "09:00"
	EndTime        *string `json:"endTime,omitempty"` // "10:00", должен совпасть с расчетным
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	UnitID          int64   `json:"unitId"`
	ProfessionalID  int64   `json:"professionalId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	var endTime *types.TimeString
	if r.EndTime != nil {
		et, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, errInvalidTime
		}
		endTime = &et
	}

	return &createBooking.Request{
		CustomerID:     customerID,
		UnitID:         r.UnitID,
		ProfessionalID: r.ProfessionalID,
		ServiceIDs:     r.ServiceIDs,
		Date:           bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		UnitID:          resp.UnitID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceIDs:      resp.ServiceIDs,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
