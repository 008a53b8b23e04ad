package create_leave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.CreateLeaveRequest
	err error
}

func (f *fakeService) CreateLeave(_ context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LeaveResponse{ID: 11, ProfessionalID: req.ProfessionalID, Date: req.Date, Morning: req.Morning}, nil
}

func post(svc ScheduleService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/professionals/7/leaves", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"professionalId": "7"})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}

	rec := post(svc, `{"date":"2026-03-10","morning":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.got.ProfessionalID)
	require.NotNil(t, svc.got.Date)
	assert.Equal(t, "2026-03-10", *svc.got.Date)
	assert.True(t, svc.got.Morning)
	assert.False(t, svc.got.Evening)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{}, `{"date":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{err: schedule.ErrInvalidInput}, `{}`).Code)
	assert.Equal(t, http.StatusNotFound, post(&fakeService{err: schedule.ErrProfessionalNotFound}, `{"weekday":1}`).Code)
	assert.Equal(t, http.StatusInternalServerError, post(&fakeService{err: schedule.ErrInternal}, `{"weekday":1}`).Code)
}
