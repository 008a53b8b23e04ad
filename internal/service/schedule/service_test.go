package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	leaveRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fakeSchedule struct {
	settings *domain.UnitSettings
	periods  []*domain.OperatingPeriod
	replaced bool
}

func (f *fakeSchedule) GetUnitSettings(context.Context, int64) (*domain.UnitSettings, error) {
	if f.settings == nil {
		return nil, scheduleRepo.ErrSettingsNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSchedule) UpsertUnitSettings(_ context.Context, s *domain.UnitSettings) (*domain.UnitSettings, error) {
	cp := *s
	f.settings = &cp
	return s, nil
}

func (f *fakeSchedule) GetAllOperatingPeriods(context.Context, int64) ([]*domain.OperatingPeriod, error) {
	return f.periods, nil
}

func (f *fakeSchedule) ReplaceOperatingPeriods(_ context.Context, _ int64, periods []*domain.OperatingPeriod) error {
	f.periods = periods
	f.replaced = true
	return nil
}

type fakeLeaves struct {
	leaves  map[int64]*domain.LeavePeriod
	deleted []int64
}

func (f *fakeLeaves) GetByProfessional(_ context.Context, professionalID int64) ([]*domain.LeavePeriod, error) {
	result := make([]*domain.LeavePeriod, 0)
	for _, l := range f.leaves {
		if l.ProfessionalID == professionalID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeLeaves) GetByID(_ context.Context, id int64) (*domain.LeavePeriod, error) {
	if l, ok := f.leaves[id]; ok {
		return l, nil
	}
	return nil, leaveRepo.ErrLeaveNotFound
}

func (f *fakeLeaves) Create(_ context.Context, l *domain.LeavePeriod) (*domain.LeavePeriod, error) {
	l.ID = int64(len(f.leaves) + 1)
	f.leaves[l.ID] = l
	return l, nil
}

func (f *fakeLeaves) Delete(_ context.Context, _ int64, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.leaves, id)
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetProfessional(_ context.Context, id int64) (*domain.Professional, error) {
	if id == 7 {
		return &domain.Professional{ID: 7, UnitID: 1, Name: "Anna", IsActive: true}, nil
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newService() (*Service, *fakeSchedule, *fakeLeaves) {
	sched := &fakeSchedule{}
	leaves := &fakeLeaves{leaves: map[int64]*domain.LeavePeriod{}}
	return NewService(sched, leaves, fakeCatalog{}, &fakeTx{}, logger.NewNop()), sched, leaves
}

func open(weekday int, period, from, to string) models.PeriodRequest {
	return models.PeriodRequest{Weekday: weekday, Period: period, IsOpen: true, OpenTime: ptr.Ptr(from), CloseTime: ptr.Ptr(to)}
}

func TestGetUnitSchedule_Defaults(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetUnitSchedule(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, resp.DefaultsApplied)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	assert.Empty(t, resp.Periods)
}

func TestUpdateSchedule(t *testing.T) {
	svc, sched, _ := newService()

	resp, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UnitID:                 1,
		SlotGranularityMinutes: ptr.Ptr(40),
		Periods: []models.PeriodRequest{
			open(2, "morning", "08:00", "12:00"),
			open(2, "afternoon", "13:00", "17:00"),
			{Weekday: 2, Period: "evening", IsOpen: false},
		},
	})

	require.NoError(t, err)
	assert.True(t, sched.replaced)
	assert.False(t, resp.DefaultsApplied)
	assert.Equal(t, 40, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	require.Len(t, resp.Periods, 3)
	assert.Equal(t, "08:00", *resp.Periods[0].OpenTime)
	assert.Nil(t, resp.Periods[2].OpenTime)
}

func TestUpdateSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateScheduleRequest
		wantErr error
	}{
		{
			name:    "granularity",
			req:     models.UpdateScheduleRequest{UnitID: 1, SlotGranularityMinutes: ptr.Ptr(15)},
			wantErr: ErrInvalidGranularity,
		},
		{
			name:    "notice out of range",
			req:     models.UpdateScheduleRequest{UnitID: 1, MinBookingNoticeMinutes: ptr.Ptr(-5)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "open after close",
			req:     models.UpdateScheduleRequest{UnitID: 1, Periods: []models.PeriodRequest{open(1, "morning", "12:00", "08:00")}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "overlapping periods",
			req: models.UpdateScheduleRequest{UnitID: 1, Periods: []models.PeriodRequest{
				open(1, "morning", "08:00", "12:00"),
				open(1, "afternoon", "11:00", "15:00"),
			}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "duplicate period",
			req: models.UpdateScheduleRequest{UnitID: 1, Periods: []models.PeriodRequest{
				open(1, "morning", "08:00", "10:00"),
				open(1, "morning", "10:00", "12:00"),
			}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "bad weekday",
			req:     models.UpdateScheduleRequest{UnitID: 1, Periods: []models.PeriodRequest{open(7, "morning", "08:00", "12:00")}},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "open without times",
			req:     models.UpdateScheduleRequest{UnitID: 1, Periods: []models.PeriodRequest{{Weekday: 1, Period: "evening", IsOpen: true}}},
			wantErr: ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sched, _ := newService()
			req := tt.req

			_, err := svc.UpdateSchedule(context.Background(), &req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, sched.replaced)
		})
	}
}

func TestCreateLeave(t *testing.T) {
	svc, _, leaves := newService()

	resp, err := svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{
		ProfessionalID: 7,
		Date:           ptr.Ptr("2026-03-10"),
		Morning:        true,
		Afternoon:      true,
		Evening:        true,
		Reason:         ptr.Ptr("vacation"),
	})

	require.NoError(t, err)
	assert.True(t, resp.FullDay)
	assert.Equal(t, "2026-03-10", *resp.Date)
	assert.Nil(t, resp.Weekday)

	stored := leaves.leaves[resp.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.Matches(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestCreateLeave_Recurring(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{
		ProfessionalID: 7,
		Weekday:        ptr.Ptr(1),
		Evening:        true,
	})

	require.NoError(t, err)
	assert.False(t, resp.FullDay)
	assert.Equal(t, 1, *resp.Weekday)
}

func TestCreateLeave_Invalid(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{ProfessionalID: 7, Morning: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{
		ProfessionalID: 7, Date: ptr.Ptr("2026-03-10"), Weekday: ptr.Ptr(2), Morning: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{ProfessionalID: 7, Weekday: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateLeave(context.Background(), &models.CreateLeaveRequest{ProfessionalID: 8, Weekday: ptr.Ptr(2), Morning: true})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestListAndDeleteLeave(t *testing.T) {
	svc, _, leaves := newService()
	w := time.Sunday
	leaves.leaves[1] = &domain.LeavePeriod{ID: 1, ProfessionalID: 7, Weekday: &w, Morning: true, Afternoon: true, Evening: true}

	list, err := svc.ListLeaves(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list.Leaves, 1)
	assert.True(t, list.Leaves[0].FullDay)

	require.NoError(t, svc.DeleteLeave(context.Background(), 1))
	assert.Equal(t, []int64{1}, leaves.deleted)

	assert.ErrorIs(t, svc.DeleteLeave(context.Background(), 1), ErrLeaveNotFound)
}
