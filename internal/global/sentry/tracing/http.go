package tracing

import (
	"net/url"

	"club-portal-system/config"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
)

// SetupRestyTracing 给 Resty 客户端挂上 Sentry 追踪钩子
func SetupRestyTracing(client *resty.Client) {
	if !config.Get().Sentry.Tracing.TraceHTTPCalls {
		return
	}

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		parent := sentry.SpanFromContext(req.Context())
		if parent == nil {
			return nil
		}

		target := strippedURL(req.URL)
		span := parent.StartChild("http.client")
		span.Description = req.Method + " " + target
		span.SetData("http.request.method", req.Method)
		span.SetData("url.full", target)

		// 透传 trace 头，下游服务可以接上同一条链路
		req.SetHeader("sentry-trace", span.ToSentryTrace())
		if baggage := span.ToBaggage(); baggage != "" {
			req.SetHeader("baggage", baggage)
		}

		req.SetContext(span.Context())
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		span := sentry.SpanFromContext(resp.Request.Context())
		if span == nil {
			return nil
		}

		span.SetData("http.response.status_code", resp.StatusCode())
		span.Status = sentry.SpanStatusOK
		if resp.StatusCode() >= 400 {
			span.Status = sentry.HTTPtoSpanStatus(resp.StatusCode())
		}

		span.Finish()
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		if req == nil {
			return
		}
		span := sentry.SpanFromContext(req.Context())
		if span == nil {
			return
		}

		span.Status = sentry.SpanStatusInternalError
		span.SetData("http.error", err.Error())
		span.Finish()
	})
}

// strippedURL 丢弃查询串，只留 scheme://host/path
func strippedURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || raw == "" {
		return "unknown"
	}

	out := parsed.Host + parsed.Path
	if parsed.Scheme != "" {
		out = parsed.Scheme + "://" + out
	}
	if out == "" {
		return "unknown"
	}
	return out
}
