// Package middleware applies cross-cutting HTTP policies for the server,
// chiefly GraphQL-aware access logging.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"graphql-request-logger/internal/accesslog"
	"graphql-request-logger/internal/gqlrequest"
	"graphql-request-logger/internal/logging"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header name for request IDs.
const RequestIDHeader = "X-Request-ID"

// AccessLogOptions configure one access-log middleware instance. Validate
// them at setup (config.Validate); the middleware itself never fails a
// request over them.
type AccessLogOptions struct {
	Level                 slog.Level
	Format                accesslog.Format
	IgnoredPaths          []string
	IncludeVariables      bool
	FilteredVariables     []string
	IncludeUnnamedQueries bool
	SamplingRatio         float64
	IncludeVendorFields   bool
}

// AccessLog wraps an HTTP handler with one-line-per-request logging. The
// request is timed from entry to response-send; body parameters are decoded
// up front (and the body rewound) so GraphQL metadata is available once the
// response outcome is known. Nothing in here may propagate an error into
// the request lifecycle: inspection and rendering failures degrade to
// simpler output instead.
func AccessLog(logger *logging.Logger, opts AccessLogOptions) func(http.Handler) http.Handler {
	sampler := accesslog.NewSampler(opts.IgnoredPaths, opts.SamplingRatio, nil)
	inspectOpts := gqlrequest.InspectOptions{
		IncludeVariables:      opts.IncludeVariables,
		FilteredVariables:     opts.FilteredVariables,
		IncludeUnnamedQueries: opts.IncludeUnnamedQueries,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Extract or generate the request ID and echo it back for
			// traceability.
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.WithRequestID(requestID)
			ctx := logging.WithRequestIDContext(r.Context(), requestID)
			ctx = logging.WithLogger(ctx, reqLogger)

			// A body that cannot be decoded is simply not GraphQL.
			params, _ := gqlrequest.DecodeParams(r)

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			status := wrapped.Status()
			if !sampler.ShouldLog(status, r.URL.Path) {
				return
			}

			elapsed := time.Since(start)
			facts := accesslog.FactsFromRequest(r)
			op := gqlrequest.Inspect(r.Method, params, inspectOpts)

			rec := accesslog.NewRecord(facts, op, status, wrapped.Delivery(), elapsed)
			if opts.IncludeVendorFields && opts.Format != accesslog.FormatString {
				rec.Vendor = accesslog.VendorFields(ctx, facts, status, elapsed)
			}

			emit(ctx, reqLogger, opts.Level, opts.Format, rec)
		})
	}
}

// emit writes the assembled record through the slog sink in the configured
// shape: the string shape becomes the message, the json shape becomes a
// pre-encoded message, and the map shape becomes structured attributes on a
// line keyed by the request path.
func emit(ctx context.Context, logger *logging.Logger, level slog.Level, format accesslog.Format, rec *accesslog.Record) {
	switch format {
	case accesslog.FormatMap:
		fields := rec.Map()
		attrs := make([]any, 0, len(fields))
		for key, value := range fields {
			attrs = append(attrs, slog.Any(key, value))
		}
		logger.Log(ctx, level, rec.Path, attrs...)
	case accesslog.FormatJSON:
		logger.Log(ctx, level, accesslog.RenderJSON(rec.Map()))
	default:
		logger.Log(ctx, level, rec.Line())
	}
}
