package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// readinessTimeout bounds one readiness sweep across every backend; a hung
// Redis or Postgres ping must not hold the probe open indefinitely.
const readinessTimeout = 5 * time.Second

// Checker pings a single backend (cart store, database, broker).
type Checker func(ctx context.Context) error

// Status is reported per check and for the instance as a whole.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the health endpoint's JSON body.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome for one named backend.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler serves the storefront's liveness and readiness probes. Backends
// register themselves at startup; an instance with no registered checkers is
// always ready.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewHandler() *Handler {
	return &Handler{checkers: make(map[string]Checker)}
}

// Register adds a named backend check. Registration after the server starts
// is safe.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// LivenessHandler answers 200 whenever the process can serve at all.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler pings every registered backend and answers 503 when any
// of them fails, with the failing check named in the body.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := h.sweep(ctx)

		code := http.StatusOK
		if resp.Status == StatusDown {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
	}
}

// sweep runs every checker against a snapshot of the registry.
func (h *Handler) sweep(ctx context.Context) Response {
	h.mu.RLock()
	checkers := make(map[string]Checker, len(h.checkers))
	for name, c := range h.checkers {
		checkers[name] = c
	}
	h.mu.RUnlock()

	resp := Response{
		Status:    StatusUp,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckResult, len(checkers)),
	}
	for name, check := range checkers {
		if err := check(ctx); err != nil {
			resp.Checks[name] = CheckResult{Status: StatusDown, Error: err.Error()}
			resp.Status = StatusDown
			continue
		}
		resp.Checks[name] = CheckResult{Status: StatusUp}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
