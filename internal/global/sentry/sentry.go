package sentry

import (
	"fmt"
	"time"

	"club-portal-system/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError 带业务错误码的错误，用于过滤上报范围
type CodedError interface {
	error
	GetCode() int32
}

// enabled 未配置 DSN 时所有入口都退化为空操作
func enabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// Init 初始化 Sentry SDK
func Init() error {
	if !enabled() {
		return nil
	}
	cfg := config.Get()

	sampleRate := cfg.Sentry.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}
	env := cfg.Sentry.Environment
	if env == "" {
		env = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      env,
		Release:          "club-portal-system@1.0.0",
		SampleRate:       1.0, // 错误事件全量上报，只对 trace 采样
		EnableTracing:    true,
		TracesSampleRate: sampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// Middleware 返回 Sentry Gin 中间件
func Middleware() gin.HandlerFunc {
	if !enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		// panic 继续向上抛，由 Recovery 中间件兜底
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException 上报异常，只收 5xxxx 段的服务端错误
func CaptureException(c *gin.Context, err error) {
	if !enabled() || !shouldReport(err) {
		return
	}

	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("path", c.Request.URL.Path)
		scope.SetTag("method", c.Request.Method)
		if payload, exists := c.Get("payload"); exists {
			scope.SetUser(sentry.User{
				Data: map[string]string{
					"payload": fmt.Sprintf("%+v", payload),
				},
			})
		}
		hub.CaptureException(err)
	})
}

func shouldReport(err error) bool {
	if e, ok := err.(CodedError); ok {
		return e.GetCode() >= 50000
	}
	return true
}

// Flush 程序退出前清空上报缓冲
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
