package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"unitId":1,"professionalId":7,"serviceIds":[3,4],"bookingDate":"2026-03-10","startTime":"09:00","endTime":"10:00"}`

func post(uc CreateBookingUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              55,
		CustomerID:      42,
		UnitID:          1,
		ProfessionalID:  7,
		ServiceIDs:      []int64{3, 4},
		BookingDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("09:00"),
		EndTime:         types.MustTimeString("10:00"),
		DurationMinutes: 60,
		Status:          "pending",
		TotalPrice:      25,
		CreatedAt:       now,
		UpdatedAt:       now,
	}}

	rec := post(uc, validBody, 42)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.got.CustomerID)
	assert.Equal(t, types.MustTimeString("09:00"), uc.got.StartTime)
	require.NotNil(t, uc.got.EndTime)
	assert.Equal(t, "10:00", uc.got.EndTime.String())

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(55), body.ID)
	assert.Equal(t, "10:00", body.EndTime)
	assert.Equal(t, "pending", body.Status)
}

func TestHandle_Conflicts(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: start 09:00 not offered", createBooking.ErrSlotNotAvailable),
		createBooking.ErrSlotBeingBooked,
	} {
		rec := post(&fakeUseCase{err: err}, validBody, 42)

		require.Equal(t, http.StatusConflict, rec.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Retryable)
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"malformed json", `{"unitId":`, nil, http.StatusBadRequest},
		{"unknown field", `{"userId":1}`, nil, http.StatusBadRequest},
		{"bad date", `{"bookingDate":"10/03/2026","startTime":"09:00"}`, nil, http.StatusBadRequest},
		{"bad time", `{"bookingDate":"2026-03-10","startTime":"9am"}`, nil, http.StatusBadRequest},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"service", validBody, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.body, 42)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, validBody, 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
