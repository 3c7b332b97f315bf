package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// 日志里最多保留 10KB 响应体
const maxLoggedBody = 10 * 1024

// capturingWriter 在写出响应的同时截留一份前缀用于日志
type capturingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.buf.Len(); room > 0 {
		if len(b) > room {
			w.buf.Write(b[:room])
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Logger 记录每个请求的方法、路径、状态码、耗时和响应体前缀
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		cw := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = cw

		c.Next()

		body := cw.buf.String()
		if cw.buf.Len() >= maxLoggedBody {
			body += "...(truncated)"
		}

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"response_body", body,
		)
	}
}
