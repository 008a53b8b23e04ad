package get_unit_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

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
	got *models.ListUnitBookingsRequest
	err error
}

func (f *fakeService) ListUnitBookings(_ context.Context, req *models.ListUnitBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

func get(svc BookingService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/units/{unitId}/bookings", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(4, url.Values{
		"professionalId": {"7"},
		"startDate":      {"2026-03-01"},
		"endDate":        {"2026-03-31"},
		"includeHistory": {"true"},
	})
	require.NoError(t, err)
	require.NotNil(t, req.ProfessionalID)
	assert.Equal(t, int64(7), *req.ProfessionalID)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *req.EndDate)
	assert.True(t, req.IncludeHistory)

	req, err = ToServiceRequest(4, url.Values{"date": {"2026-03-10"}, "startDate": {"2026-01-01"}})
	require.NoError(t, err)
	assert.Equal(t, *req.StartDate, *req.EndDate)

	_, err = ToServiceRequest(4, url.Values{"includeHistory": {"maybe"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/units/4/bookings?date=2026-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.got.UnitID)
	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Bookings, 2)

	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/units/4/bookings?professionalId=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: bookings.ErrInvalidTimeRange}, "/units/4/bookings").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: bookings.ErrInternal}, "/units/4/bookings").Code)
}
