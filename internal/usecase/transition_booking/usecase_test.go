package transition_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var finalizedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	active  map[int64]*domain.Booking
	history map[int64]*domain.BookingHistory
	updated []domain.BookingStatus
	moved   []*domain.BookingHistory
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		active:  map[int64]*domain.Booking{},
		history: map[int64]*domain.BookingHistory{},
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.active[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetHistoryByID(_ context.Context, id int64) (*domain.BookingHistory, error) {
	h, ok := f.history[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return h, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.updated = append(f.updated, status)
	f.active[id].Status = status
	return nil
}

func (f *fakeRepo) MoveToHistory(_ context.Context, h *domain.BookingHistory) error {
	h.FinalizedAt = finalizedAt
	f.moved = append(f.moved, h)
	f.history[h.ID] = h
	delete(f.active, h.ID)
	return nil
}

type fakePublisher struct{ events []string }

func (f *fakePublisher) PublishBookingEvent(_ context.Context, eventType string, _ *domain.Booking) error {
	f.events = append(f.events, eventType)
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeMetrics struct{ transitions []string }

func (f *fakeMetrics) IncBookingTransition(to string) { f.transitions = append(f.transitions, to) }

func activeBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             5,
		CustomerID:     100,
		ProfessionalID: 7,
		UnitID:         1,
		BookingDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      types.MustTimeString("09:00"),
		EndTime:        types.MustTimeString("10:00"),
		Status:         status,
		ServiceIDs:     []int64{1, 2},
	}
}

func setup() (*fakeRepo, *fakePublisher, *fakeMetrics, *UseCase) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	m := &fakeMetrics{}
	return repo, pub, m, NewUseCase(repo, pub, fakeTx{}, m, logger.NewNop())
}

func TestExecute_Confirm(t *testing.T) {
	repo, pub, m, uc := setup()
	repo.active[5] = activeBooking(domain.StatusPending)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: domain.StatusConfirmed, ActorID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.PreviousStatus)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Nil(t, resp.FinalizedAt)
	assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, repo.updated)
	assert.Empty(t, repo.moved)
	assert.Equal(t, []string{events.TypeBookingConfirmed}, pub.events)
	assert.Equal(t, []string{"confirmed"}, m.transitions)
}

func TestExecute_CancelMovesToHistory(t *testing.T) {
	repo, pub, _, uc := setup()
	repo.active[5] = activeBooking(domain.StatusConfirmed)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		NewStatus: domain.StatusCancelled,
		Reason:    ptr.Ptr("client is sick"),
		ActorID:   100,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.FinalizedAt)
	assert.Equal(t, finalizedAt, *resp.FinalizedAt)

	require.Len(t, repo.moved, 1)
	h := repo.moved[0]
	assert.Equal(t, domain.StatusCancelled, h.FinalStatus)
	assert.Equal(t, "client is sick", *h.Reason)
	assert.Equal(t, int64(100), *h.FinalizedBy)
	assert.Equal(t, []int64{1, 2}, h.ServiceIDs)
	assert.NotContains(t, repo.active, int64(5))
	assert.Equal(t, []string{events.TypeBookingCancelled}, pub.events)
}

func TestExecute_CompleteFromPending(t *testing.T) {
	repo, _, _, uc := setup()
	repo.active[5] = activeBooking(domain.StatusPending)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: domain.StatusCompleted, ActorID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Status)
}

func TestExecute_InvalidTransitions(t *testing.T) {
	t.Run("confirmed to pending", func(t *testing.T) {
		repo, pub, _, uc := setup()
		repo.active[5] = activeBooking(domain.StatusConfirmed)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: domain.StatusPending, ActorID: 1})

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Empty(t, repo.updated)
		assert.Empty(t, pub.events)
	})

	t.Run("already finalized", func(t *testing.T) {
		repo, _, _, uc := setup()
		repo.history[5] = &domain.BookingHistory{
			Booking:     *activeBooking(domain.StatusCompleted),
			FinalStatus: domain.StatusCompleted,
		}

		_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: domain.StatusCancelled, ActorID: 1})

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestExecute_NotFound(t *testing.T) {
	_, _, _, uc := setup()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, NewStatus: domain.StatusConfirmed, ActorID: 1})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	_, _, _, uc := setup()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "archived", ActorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: domain.StatusConfirmed})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
