package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// Request модели

// ListUnitBookingsRequest запрос на получение бронирований салона
type ListUnitBookingsRequest struct {
	UnitID         int64      `json:"unitId"`
	ProfessionalID *int64     `json:"professionalId,omitempty"` // Фильтр по мастеру (опционально)
	StartDate      *time.Time `json:"startDate,omitempty"`      // Начало периода (опционально)
	EndDate        *time.Time `json:"endDate,omitempty"`        // Конец периода (опционально)
	IncludeHistory bool       `json:"includeHistory,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListUnitBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	unitID := r.UnitID
	return domain.BookingsFilter{
		UnitID:         &unitID,
		ProfessionalID: r.ProfessionalID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IncludeHistory: r.IncludeHistory,
	}
}

// ListCustomerBookingsRequest запрос на получение бронирований клиента
type ListCustomerBookingsRequest struct {
	UserID         int64 `json:"userId"`
	CustomerID     int64 `json:"customerId"`
	IncludeHistory bool  `json:"includeHistory,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	UnitID          int64   `json:"unitId"`
	ProfessionalID  int64   `json:"professionalId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	BookingDate     string  `json:"bookingDate"` // "2026-03-10"
	StartTime       string  `json:"startTime"`   // "09:00"
	EndTime         string  `json:"endTime"`     // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`

	// Денормализованные данные
	ProfessionalName string   `json:"professionalName,omitempty"`
	ServiceNames     []string `json:"serviceNames,omitempty"`

	Reason      *string `json:"reason,omitempty"`
	FinalizedAt *string `json:"finalizedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует активное бронирование в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	serviceIDs := b.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		UnitID:          b.UnitID,
		ProfessionalID:  b.ProfessionalID,
		ServiceIDs:      serviceIDs,
		BookingDate:     civiltime.FormatDate(b.BookingDate),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes(),
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainHistory конвертирует запись истории в DTO
func FromDomainHistory(h *domain.BookingHistory) *BookingResponse {
	if h == nil {
		return nil
	}

	resp := FromDomainBooking(&h.Booking)
	resp.Status = string(h.FinalStatus)
	resp.Reason = h.Reason
	resp.FinalizedAt = formatTime(&h.FinalizedAt)

	return resp
}

// FromDomainView конвертирует строку админского списка в DTO
func FromDomainView(v *domain.BookingView) *BookingResponse {
	if v == nil {
		return nil
	}

	resp := FromDomainBooking(&v.Booking)
	resp.ProfessionalName = v.ProfessionalName
	resp.ServiceNames = v.ServiceNames
	resp.Reason = v.Reason
	resp.FinalizedAt = formatTime(v.FinalizedAt)

	return resp
}

// FromDomainViewList конвертирует список в DTO
func FromDomainViewList(views []*domain.BookingView) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(views)),
	}

	for _, v := range views {
		if r := FromDomainView(v); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
