package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/inventory_consumer/internal/kafka"
	rest "github.com/Gunvolt24/inventory_consumer/internal/transport/http"
	"github.com/gin-gonic/gin"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type fixedState kafka.State

func (s fixedState) State() kafka.State { return kafka.State(s) }

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.n, f.err }

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) rest.StatusResponse {
	t.Helper()
	var got rest.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return got
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rest.NewHandler(fixedState(kafka.StateRunning), nil, "inventory-updates", "g", noopLogger{}, 0)

	w := get(t, rest.NewRouter(h, ""), "/ping")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want 200 pong, got %d %q", w.Code, w.Body.String())
	}
}

func TestStatus_Running_WithStoredCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rest.NewHandler(fixedState(kafka.StateRunning), fakeCounter{n: 7}, "inventory-updates", "inventory-consumer-group", noopLogger{}, 0)

	w := get(t, rest.NewRouter(h, ""), "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	got := decodeStatus(t, w)
	if got.State != "running" || got.Topic != "inventory-updates" || got.GroupID != "inventory-consumer-group" {
		t.Fatalf("unexpected status: %+v", got)
	}
	if got.Stored == nil || *got.Stored != 7 {
		t.Fatalf("want stored=7, got %v", got.Stored)
	}
}

func TestStatus_Stopped_Unavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rest.NewHandler(fixedState(kafka.StateStopped), nil, "inventory-updates", "g", noopLogger{}, 0)

	w := get(t, rest.NewRouter(h, ""), "/status")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", w.Code)
	}
	if got := decodeStatus(t, w); got.State != "stopped" || got.Stored != nil {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestStatus_CounterError_OmitsStored(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rest.NewHandler(fixedState(kafka.StateRunning), fakeCounter{err: errors.New("db down")}, "t", "g", noopLogger{}, 0)

	w := get(t, rest.NewRouter(h, ""), "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if got := decodeStatus(t, w); got.Stored != nil {
		t.Fatalf("stored must be omitted on counter error, got %v", *got.Stored)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rest.NewHandler(fixedState(kafka.StateRunning), nil, "t", "g", noopLogger{}, 0)

	if w := get(t, rest.NewRouter(h, ""), "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("want 200 from /metrics, got %d", w.Code)
	}
}
