package get_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ int64) (*models.BookingResponse, error) {
	return f.resp, f.err
}

func get(svc BookingService, id string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/bookings/"+id, nil), map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{ID: 3, Status: "completed", StartTime: "09:00"}}

	rec := get(svc, "3")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, "completed", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "0").Code)
	assert.Equal(t, http.StatusNotFound, get(&fakeService{err: fmt.Errorf("%w: id=3", bookings.ErrBookingNotFound)}, "3").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: bookings.ErrInternal}, "3").Code)
}
