package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/inventory_consumer/internal/kafka"
	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/Gunvolt24/inventory_consumer/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// workerState — источник состояния воркера (kafka.Consumer).
type workerState interface {
	State() kafka.State
}

// recordCounter — необязательный счётчик сохранённых записей (Postgres).
type recordCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatusResponse — тело ответа /status.
type StatusResponse struct {
	State   string `json:"state"`
	Topic   string `json:"topic"`
	GroupID string `json:"group_id"`
	Stored  *int64 `json:"stored,omitempty"`
}

type Handler struct {
	worker  workerState
	records recordCounter
	topic   string
	groupID string
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — records может быть nil (хранилище выключено).
func NewHandler(worker workerState, records recordCounter, topic, groupID string, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{worker: worker, records: records, topic: topic, groupID: groupID, log: log, timeout: timeout}
}

// NewRouter — служебный роутер. otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestID(), httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/status", h.status)

	return r
}

// status — 200, пока воркер в running; иначе 503.
func (h *Handler) status(c *gin.Context) {
	state := h.worker.State()
	resp := StatusResponse{State: state.String(), Topic: h.topic, GroupID: h.groupID}

	if h.records != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		n, err := h.records.Count(ctx)
		if err != nil {
			h.log.Warnf(ctx, "count stored records failed: %v", err)
		} else {
			resp.Stored = &n
		}
	}

	code := http.StatusOK
	if state != kafka.StateRunning {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
