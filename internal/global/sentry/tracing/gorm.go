package tracing

import (
	"time"

	"club-portal-system/config"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	dbSpanKey  = "sentry:db_span"
	dbStartKey = "sentry:db_start"
)

// registerer 匹配 gorm 回调注册链的末端，其具体类型未导出
type registerer interface {
	Register(name string, fn func(*gorm.DB)) error
}

// GormTracingPlugin 以 GORM 插件形式为数据库操作创建 Sentry span
// slowThreshold 大于 0 时只保留慢查询 span，其余标记为不采样
type GormTracingPlugin struct {
	slowThreshold time.Duration
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return &GormTracingPlugin{
		slowThreshold: time.Duration(config.Get().Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond,
	}
}

func (p *GormTracingPlugin) Name() string {
	return "SentryTracingPlugin"
}

// Initialize 为六类操作注册前后回调
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	register := func(name string, before, after registerer) {
		_ = before.Register("sentry_tracing:before_"+name, p.startSpan("db.sql."+name))
		_ = after.Register("sentry_tracing:after_"+name, p.finishSpan)
	}

	register("create", db.Callback().Create().Before("gorm:create"), db.Callback().Create().After("gorm:create"))
	register("query", db.Callback().Query().Before("gorm:query"), db.Callback().Query().After("gorm:query"))
	register("update", db.Callback().Update().Before("gorm:update"), db.Callback().Update().After("gorm:update"))
	register("delete", db.Callback().Delete().Before("gorm:delete"), db.Callback().Delete().After("gorm:delete"))
	register("row", db.Callback().Row().Before("gorm:row"), db.Callback().Row().After("gorm:row"))
	register("raw", db.Callback().Raw().Before("gorm:raw"), db.Callback().Raw().After("gorm:raw"))

	return nil
}

func (p *GormTracingPlugin) startSpan(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}

		db.InstanceSet(dbStartKey, time.Now())

		parent := sentry.SpanFromContext(db.Statement.Context)
		if parent == nil {
			return
		}

		span := parent.StartChild(operation)
		// 描述只用表名，完整 SQL 基数太高且可能含敏感数据
		if db.Statement.Table != "" {
			span.Description = db.Statement.Table
		} else {
			span.Description = "unknown"
		}
		span.SetData("db.system", "mysql")

		db.InstanceSet(dbSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) finishSpan(db *gorm.DB) {
	if db.Statement == nil {
		return
	}

	startVal, ok := db.InstanceGet(dbStartKey)
	if !ok {
		return
	}
	start, ok := startVal.(time.Time)
	if !ok {
		return
	}

	spanVal, ok := db.InstanceGet(dbSpanKey)
	if !ok {
		return
	}
	span, ok := spanVal.(*sentry.Span)
	if !ok || span == nil {
		return
	}

	if p.slowThreshold > 0 && time.Since(start) < p.slowThreshold {
		span.Sampled = sentry.SampledFalse
	}

	span.SetData("db.rows_affected", db.RowsAffected)
	if db.Error != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", db.Error.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}

	span.Finish()
}
