package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/hold"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeBookings struct {
	existing  []*domain.Booking
	activeErr error
	createErr error
	created   *domain.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 42
	b.CreatedAt = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return b, nil
}

func (f *fakeBookings) GetActiveByProfessionalAndDate(context.Context, int64, time.Time) ([]*domain.Booking, error) {
	return f.existing, f.activeErr
}

type fakeSchedule struct {
	periods    []*domain.OperatingPeriod
	periodsErr error
}

func (f *fakeSchedule) GetUnitSettings(context.Context, int64) (*domain.UnitSettings, error) {
	return nil, scheduleRepo.ErrSettingsNotFound
}

func (f *fakeSchedule) GetOperatingPeriods(context.Context, int64, time.Weekday) ([]*domain.OperatingPeriod, error) {
	return f.periods, f.periodsErr
}

type fakeLeaves struct{}

func (fakeLeaves) GetByProfessional(context.Context, int64) ([]*domain.LeavePeriod, error) {
	return nil, nil
}

type fakeCatalog struct {
	professional *domain.Professional
	services     []*domain.Service
}

func (f *fakeCatalog) GetProfessional(context.Context, int64) (*domain.Professional, error) {
	if f.professional == nil {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return f.professional, nil
}

func (f *fakeCatalog) GetServicesByIDs(_ context.Context, _ int64, ids []int64) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, s := range f.services {
		for _, id := range ids {
			if s.ID == id {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

type fakeHolder struct {
	busy     bool
	acquired int
	released []string
}

func (f *fakeHolder) Acquire(context.Context, int64, time.Time) (string, error) {
	if f.busy {
		return "", hold.ErrHoldBusy
	}
	f.acquired++
	return fmt.Sprintf("token-%d", f.acquired), nil
}

func (f *fakeHolder) Release(_ context.Context, _ int64, _ time.Time, token string) error {
	f.released = append(f.released, token)
	return nil
}

type fakePublisher struct {
	err    error
	events []string

	// holder позволяет проверить, снято ли удержание к моменту публикации
	holder            *fakeHolder
	releasedAtPublish []int
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, eventType string, _ *domain.Booking) error {
	f.events = append(f.events, eventType)
	if f.holder != nil {
		f.releasedAtPublish = append(f.releasedAtPublish, len(f.holder.released))
	}
	return f.err
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct{ conflicts int }

func (f *fakeMetrics) IncBookingConflict() { f.conflicts++ }

type fixture struct {
	bookings   *fakeBookings
	periodsErr error
	catalog    *fakeCatalog
	holder     *fakeHolder
	publisher  *fakePublisher
	tx         *fakeTx
	metrics    *fakeMetrics
}

// Вторник 10 марта 2026, "сейчас" - понедельник 9 марта 10:00
var (
	testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
)

func newFixture() *fixture {
	holder := &fakeHolder{}
	return &fixture{
		bookings: &fakeBookings{},
		catalog: &fakeCatalog{
			professional: &domain.Professional{ID: 7, UnitID: 1, Name: "Anna", IsActive: true},
			services: []*domain.Service{
				{ID: 1, UnitID: 1, Name: "Haircut", DurationMinutes: ptr.Ptr(40), Price: ptr.Ptr(25.0), IsActive: true},
				{ID: 2, UnitID: 1, Name: "Wash", DurationMinutes: ptr.Ptr(20), IsActive: true},
			},
		},
		holder:    holder,
		publisher: &fakePublisher{holder: holder},
		tx:        &fakeTx{},
		metrics:   &fakeMetrics{},
	}
}

func (f *fixture) useCase() *UseCase {
	schedule := &fakeSchedule{
		periods: []*domain.OperatingPeriod{{
			UnitID:    1,
			Weekday:   time.Tuesday,
			Period:    domain.PeriodMorning,
			IsOpen:    true,
			OpenTime:  ptr.Ptr(types.MustTimeString("08:00")),
			CloseTime: ptr.Ptr(types.MustTimeString("12:00")),
		}},
		periodsErr: f.periodsErr,
	}

	return NewUseCase(
		f.bookings,
		schedule,
		fakeLeaves{},
		f.catalog,
		f.holder,
		f.publisher,
		f.tx,
		civiltime.NewFixedClock(testNow),
		f.metrics,
		logger.NewNop(),
	)
}

func validRequest() *Request {
	return &Request{
		CustomerID:     100,
		UnitID:         1,
		ProfessionalID: 7,
		ServiceIDs:     []int64{1, 2},
		Date:           testDate,
		StartTime:      types.MustTimeString("09:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "10:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 25.0, resp.TotalPrice)
	assert.Equal(t, []int64{1, 2}, resp.ServiceIDs)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"token-1"}, f.holder.released)
	assert.Equal(t, []string{events.TypeBookingCreated}, f.publisher.events)
	assert.Zero(t, f.metrics.conflicts)
}

func TestExecute_DuplicateServicesCollapsed(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ServiceIDs = []int64{1, 1, 2}

	resp, err := f.useCase().Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, resp.ServiceIDs)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{{
		ID:             1,
		ProfessionalID: 7,
		BookingDate:    testDate,
		StartTime:      types.MustTimeString("09:20"),
		EndTime:        types.MustTimeString("09:40"),
		Status:         domain.StatusConfirmed,
	}}

	resp, err := f.useCase().Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.publisher.events)
	assert.Len(t, f.holder.released, 1)
}

func TestExecute_DatabaseConflict(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = fmt.Errorf("%w: Create - insert booking: exclusion", bookingRepo.ErrSlotConflict)

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_HoldBusy(t *testing.T) {
	f := newFixture()
	f.holder.busy = true

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotBeingBooked)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_OutsideOpeningHours(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = types.MustTimeString("11:20")

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_EndTimeMismatch(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.EndTime = ptr.Ptr(types.MustTimeString("09:40"))

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.holder.acquired)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"no services", func(r *Request) { r.ServiceIDs = nil }, ErrInvalidInput},
		{"no customer", func(r *Request) { r.CustomerID = 0 }, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = testDate.AddDate(0, 0, -2) }, ErrInvalidDate},
		{"unknown service", func(r *Request) { r.ServiceIDs = []int64{99} }, ErrServiceNotFound},
		{"foreign professional", func(r *Request) { r.UnitID = 2 }, ErrProfessionalNotInUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase().Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	f := newFixture()
	f.catalog.professional = nil

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_PublishFailureKeepsBooking(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	resp, err := f.useCase().Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_HoldReleasedBeforePublish(t *testing.T) {
	f := newFixture()

	_, err := f.useCase().Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []int{1}, f.publisher.releasedAtPublish)
}

func TestExecute_SerializationFailureOnRead(t *testing.T) {
	serializationErr := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "locked bookings read",
			setup: func(f *fixture) {
				f.bookings.activeErr = fmt.Errorf("%w: GetActiveByProfessionalAndDate - execute query: %v",
					bookingRepo.ErrSlotConflict, serializationErr)
			},
		},
		{
			name: "operating periods read",
			setup: func(f *fixture) {
				f.periodsErr = fmt.Errorf("%w: GetOperatingPeriods - execute query: %w",
					scheduleRepo.ErrExecQuery, serializationErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			resp, err := f.useCase().Execute(context.Background(), validRequest())

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.NotErrorIs(t, err, ErrInternal)
			assert.Equal(t, 1, f.metrics.conflicts)
			assert.Len(t, f.holder.released, 1)
		})
	}
}
