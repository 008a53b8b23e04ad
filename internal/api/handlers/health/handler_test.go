package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func readiness(t *testing.T, deps ...Dependency) (int, ReadinessResponse) {
	rec := httptest.NewRecorder()
	NewHandler("test", deps...).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadiness(t *testing.T) {
	code, body := readiness(t,
		Dependency{Name: "postgres", Check: ok, Required: true},
		Dependency{Name: "redis", Check: ok},
	)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)

	code, body = readiness(t,
		Dependency{Name: "postgres", Check: ok, Required: true},
		Dependency{Name: "redis", Check: down},
	)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "down", body.Dependencies["redis"])

	code, body = readiness(t,
		Dependency{Name: "postgres", Check: down, Required: true},
		Dependency{Name: "redis", Check: ok},
	)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", body.Status)
}

func TestLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler("1.2.3").Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, rec.Body.String())
}
