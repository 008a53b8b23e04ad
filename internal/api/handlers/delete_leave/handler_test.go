package delete_leave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	deleted int64
	err     error
}

func (f *fakeService) DeleteLeave(_ context.Context, leaveID int64) error {
	f.deleted = leaveID
	return f.err
}

func del(svc ScheduleService, id string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/leaves/"+id, nil), map[string]string{"leaveId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := del(svc, "4")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), svc.deleted)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, del(&fakeService{err: schedule.ErrLeaveNotFound}, "4").Code)
	assert.Equal(t, http.StatusBadRequest, del(&fakeService{}, "four").Code)
}
