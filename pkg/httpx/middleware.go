package httpx

import (
	"time"

	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/Gunvolt24/inventory_consumer/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID — берёт X-Request-ID клиента или генерирует UUID, кладёт его в контекст и в ответ.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// RequestLogger — одна строка на запрос; частые служебные пути (/metrics, /ping) не логируются.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		log.Infof(c.Request.Context(), "http %s %s status=%d duration=%s",
			c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
