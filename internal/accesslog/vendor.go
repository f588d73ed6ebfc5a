package accesslog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"graphql-request-logger/internal/logging"
)

// VendorFields computes the vendor-compat field set using Datadog's
// standard HTTP attribute names. The method and status here are always the
// literal HTTP values, independent of any GraphQL rewriting in the base
// record, the url is the full request URL with scheme and host, and the
// duration is scaled to nanoseconds. Correlation
// identifiers are passed through from request-scoped context: the request
// id assigned by the middleware and the trace id of the active span, when
// one exists.
func VendorFields(ctx context.Context, req RequestFacts, status int, elapsed time.Duration) map[string]any {
	fields := map[string]any{
		"http.url":          requestURL(req),
		"http.method":       req.Method,
		"http.status_code":  status,
		"duration":          elapsed.Nanoseconds(),
		"network.client.ip": req.ClientIP,
	}

	if req.Referer != "" {
		fields["http.referer"] = req.Referer
	}
	if requestID := logging.GetRequestID(ctx); requestID != "" {
		fields["http.request_id"] = requestID
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		fields["dd.trace_id"] = sc.TraceID().String()
	}

	return fields
}

// requestURL reconstructs the URL the client requested. Facts captured
// without a host degrade to the bare path.
func requestURL(req RequestFacts) string {
	if req.Host == "" {
		return req.Path
	}
	scheme := req.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + req.Host + req.Path
}
