package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Gunvolt24/inventory_consumer/pkg/ctxmeta"
	"github.com/Gunvolt24/inventory_consumer/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLogger) Infof(_ context.Context, format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}
func (*recLogger) Warnf(context.Context, string, ...any)  {}
func (*recLogger) Errorf(context.Context, string, ...any) {}

func serve(r *gin.Engine, path string, hdr http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for k, v := range hdr {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotID string
	r := gin.New()
	r.Use(httpx.RequestID())
	r.GET("/", func(c *gin.Context) {
		gotID, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := serve(r, "/", nil)

	rid := w.Header().Get(httpx.HeaderRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("generated X-Request-ID must be UUID, got=%q err=%v", rid, err)
	}
	if gotID != rid {
		t.Fatalf("ctx request id %q must match header %q", gotID, rid)
	}
}

func TestRequestID_UsesProvidedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(httpx.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, "/", http.Header{httpx.HeaderRequestID: {"custom-42"}})
	if got := w.Header().Get(httpx.HeaderRequestID); got != "custom-42" {
		t.Fatalf("want custom-42, got %q", got)
	}
}

func TestRequestLogger_SkipsServicePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := &recLogger{}
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/status", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, "/ping", nil)
	serve(r, "/status", nil)

	if len(log.lines) != 1 {
		t.Fatalf("want one logged request (/status), got %d", len(log.lines))
	}
}
