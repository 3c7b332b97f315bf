// Package tracing 封装 Sentry 性能追踪在数据库和 HTTP 客户端上的接入
package tracing

import (
	"context"

	"club-portal-system/config"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// IsEnabled 追踪是否开启，跟随 Sentry DSN
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// ContextWithSpan 取出可传给 GORM 的 context
// sentrygin 中间件已把当前 transaction 放进 request context
func ContextWithSpan(c *gin.Context) context.Context {
	if c == nil || c.Request == nil || c.Request.Context() == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// StartSpan 在当前请求的 transaction 下开一个业务 span，调用方负责 Finish
func StartSpan(c *gin.Context, operation, description string) *sentry.Span {
	if c == nil || c.Request == nil {
		return &sentry.Span{}
	}
	parent := sentry.SpanFromContext(c.Request.Context())
	if parent == nil {
		return &sentry.Span{}
	}

	span := parent.StartChild(operation)
	span.Description = description
	return span
}
