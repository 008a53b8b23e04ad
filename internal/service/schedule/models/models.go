package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// Request модели

// PeriodRequest период работы салона в день недели
type PeriodRequest struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье
	Period    string  `json:"period"`  // morning, afternoon, evening
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00"
	CloseTime *string `json:"closeTime,omitempty"` // "12:00"
}

// UpdateScheduleRequest запрос на обновление расписания салона.
// Поля опциональны: nil оставляет текущее значение, Periods != nil заменяет неделю целиком.
type UpdateScheduleRequest struct {
	UnitID                  int64           `json:"unitId"`
	SlotGranularityMinutes  *int            `json:"slotGranularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int            `json:"minBookingNoticeMinutes,omitempty"`
	Periods                 []PeriodRequest `json:"periods,omitempty"`
}

// CreateLeaveRequest запрос на создание выходного мастера.
// Указывается либо Date (разовый), либо Weekday (еженедельный).
type CreateLeaveRequest struct {
	ProfessionalID int64   `json:"professionalId"`
	Date           *string `json:"date,omitempty"`    // "2026-03-10"
	Weekday        *int    `json:"weekday,omitempty"` // 0 = воскресенье
	Morning        bool    `json:"morning"`
	Afternoon      bool    `json:"afternoon"`
	Evening        bool    `json:"evening"`
	Reason         *string `json:"reason,omitempty"`
}

// Response модели

// PeriodResponse период работы
type PeriodResponse struct {
	Weekday   int     `json:"weekday"`
	Period    string  `json:"period"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// ScheduleResponse настройки и недельное расписание салона
type ScheduleResponse struct {
	UnitID                  int64            `json:"unitId"`
	SlotGranularityMinutes  int              `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int              `json:"minBookingNoticeMinutes"`
	DefaultsApplied         bool             `json:"defaultsApplied"` // Настройки не заданы, используются значения по умолчанию
	Periods                 []PeriodResponse `json:"periods"`
}

// LeaveResponse запись о выходном
type LeaveResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professionalId"`
	Date           *string   `json:"date,omitempty"`
	Weekday        *int      `json:"weekday,omitempty"`
	Morning        bool      `json:"morning"`
	Afternoon      bool      `json:"afternoon"`
	Evening        bool      `json:"evening"`
	FullDay        bool      `json:"fullDay"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LeaveListResponse список выходных мастера
type LeaveListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

// Методы конвертации

// FromDomainSchedule собирает ответ из настроек и периодов
func FromDomainSchedule(settings *domain.UnitSettings, defaults bool, periods []*domain.OperatingPeriod) *ScheduleResponse {
	resp := &ScheduleResponse{
		UnitID:                  settings.UnitID,
		SlotGranularityMinutes:  settings.SlotGranularityMinutes,
		MinBookingNoticeMinutes: settings.MinBookingNoticeMinutes,
		DefaultsApplied:         defaults,
		Periods:                 make([]PeriodResponse, 0, len(periods)),
	}

	for _, p := range periods {
		pr := PeriodResponse{
			Weekday: int(p.Weekday),
			Period:  string(p.Period),
			IsOpen:  p.IsOpen,
		}
		if p.OpenTime != nil {
			s := p.OpenTime.String()
			pr.OpenTime = &s
		}
		if p.CloseTime != nil {
			s := p.CloseTime.String()
			pr.CloseTime = &s
		}
		resp.Periods = append(resp.Periods, pr)
	}

	return resp
}

// FromDomainLeave конвертирует запись о выходном в DTO
func FromDomainLeave(l *domain.LeavePeriod) *LeaveResponse {
	if l == nil {
		return nil
	}

	resp := &LeaveResponse{
		ID:             l.ID,
		ProfessionalID: l.ProfessionalID,
		Morning:        l.Morning,
		Afternoon:      l.Afternoon,
		Evening:        l.Evening,
		FullDay:        l.Flags().All(),
		Reason:         l.Reason,
		CreatedAt:      l.CreatedAt,
	}
	if l.Date != nil {
		d := civiltime.FormatDate(*l.Date)
		resp.Date = &d
	}
	if l.Weekday != nil {
		w := int(*l.Weekday)
		resp.Weekday = &w
	}

	return resp
}

// FromDomainLeaveList конвертирует список в DTO
func FromDomainLeaveList(leaves []*domain.LeavePeriod) *LeaveListResponse {
	resp := &LeaveListResponse{Leaves: make([]LeaveResponse, 0, len(leaves))}
	for _, l := range leaves {
		if r := FromDomainLeave(l); r != nil {
			resp.Leaves = append(resp.Leaves, *r)
		}
	}
	return resp
}
