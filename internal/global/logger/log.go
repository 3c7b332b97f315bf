package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"club-portal-system/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanoutHandler 把一条记录分发给多个 handler
type fanoutHandler struct {
	targets []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range h.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, t := range h.targets {
		if !t.Enabled(ctx, r.Level) {
			continue
		}
		if err := t.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.targets))
	for i, t := range h.targets {
		next[i] = t.WithAttrs(attrs)
	}
	return &fanoutHandler{targets: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.targets))
	for i, t := range h.targets {
		next[i] = t.WithGroup(name)
	}
	return &fanoutHandler{targets: next}
}

// baseHandler release 模式写轮转文件，其余情况写控制台
func baseHandler(cfg *config.Config, opts *slog.HandlerOptions) slog.Handler {
	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}
		return slog.NewJSONHandler(rotator, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}

// Get 获取全局 Logger 实例
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		opts := &slog.HandlerOptions{
			AddSource: cfg.Mode == config.ModeRelease,
			Level:     parseLevel(cfg.Log.Level),
		}

		handler := baseHandler(cfg, opts)

		// 配置了 Sentry 时日志同步上报：Error 作为事件，Warn 及以上作为日志
		if cfg.Sentry.Dsn != "" {
			sentryHandler := sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
				AddSource:  cfg.Mode == config.ModeRelease,
			}.NewSentryHandler(context.Background())
			handler = &fanoutHandler{targets: []slog.Handler{handler, sentryHandler}}
		}

		instance = slog.New(handler).With(
			"app_name", "club-portal-system",
			"env", string(cfg.Mode),
		)
	})
	return instance
}

// New 派生带模块名字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
