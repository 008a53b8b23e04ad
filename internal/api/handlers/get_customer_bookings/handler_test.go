package get_customer_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.ListCustomerBookingsRequest
}

func (f *fakeService) ListCustomerBookings(_ context.Context, req *models.ListCustomerBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if req.UserID != req.CustomerID {
		return nil, bookings.ErrAccessDenied
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func get(svc BookingService, customerID, query string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/customers/"+customerID+"/bookings"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"customerId": customerID})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_OwnBookings(t *testing.T) {
	svc := &fakeService{}

	rec := get(svc, "42", "?includeHistory=true", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.IncludeHistory)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

func TestHandle_OtherCustomerForbidden(t *testing.T) {
	rec := get(&fakeService{}, "42", "", 7)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_BadParams(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "x", "", 42).Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "42", "?includeHistory=perhaps", 42).Code)
}
