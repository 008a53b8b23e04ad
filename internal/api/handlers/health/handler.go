package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const checkTimeout = time.Second

// Check проверка одной зависимости
type Check func(ctx context.Context) error

// Dependency зависимость сервиса. Required=false переводит статус только в degraded
type Dependency struct {
	Name     string
	Check    Check
	Required bool
}

type Handler struct {
	deps    []Dependency
	version string
}

func NewHandler(version string, deps ...Dependency) *Handler {
	return &Handler{deps: deps, version: version}
}

// LivenessResponse ответ liveness проверки
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ReadinessResponse ответ readiness проверки
type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

// Liveness GET /health/live
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LivenessResponse{Status: "ok", Version: h.version})
}

// Readiness GET /health/ready
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string, len(h.deps))
	status := "ok"

	for _, dep := range h.deps {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := dep.Check(ctx)
		cancel()

		if err == nil {
			deps[dep.Name] = "ok"
			continue
		}

		deps[dep.Name] = "down"
		switch {
		case dep.Required:
			status = "error"
		case status == "ok":
			status = "degraded"
		}
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, httpStatus, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Dependencies: deps,
	})
}
