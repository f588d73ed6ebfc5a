package accesslog

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"graphql-request-logger/internal/gqlrequest"
)

// Delivery tags how the response body left the server.
type Delivery string

const (
	DeliverySent    Delivery = "Sent"
	DeliveryChunked Delivery = "Chunked"
)

// Format selects the rendered shape of an emitted line.
type Format string

const (
	FormatString Format = "string"
	FormatJSON   Format = "json"
	FormatMap    Format = "map"
)

// RequestFacts are the per-request inputs the middleware captures from the
// host framework. Each header-sourced field costs one lookup.
type RequestFacts struct {
	Method          string
	Scheme          string
	Host            string
	Path            string
	ClientIP        string
	UserAgent       string
	Referer         string
	XForwardedFor   string
	XForwardedProto string
	XForwardedPort  string
	Via             string
}

// FactsFromRequest snapshots the request fields the access log needs.
func FactsFromRequest(r *http.Request) RequestFacts {
	return RequestFacts{
		Method:          r.Method,
		Scheme:          requestScheme(r),
		Host:            r.Host,
		Path:            r.URL.Path,
		ClientIP:        r.RemoteAddr,
		UserAgent:       r.UserAgent(),
		Referer:         r.Referer(),
		XForwardedFor:   r.Header.Get("X-Forwarded-For"),
		XForwardedProto: r.Header.Get("X-Forwarded-Proto"),
		XForwardedPort:  r.Header.Get("X-Forwarded-Port"),
		Via:             r.Header.Get("Via"),
	}
}

// requestScheme prefers the proxy-reported protocol over the transport
// the connection itself arrived on.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// Record is the merged view of one request/response pair, constructed fresh
// at response-send time and discarded after the line is emitted. Path is
// always the literal request path; a GraphQL operation name never
// overwrites it.
type Record struct {
	Delivery      Delivery
	Method        string
	Path          string
	OperationName string
	Status        string

	DurationMicros int64
	DurationHuman  string
	DurationMS     float64

	ClientIP        string
	UserAgent       string
	Referer         string
	XForwardedFor   string
	XForwardedProto string
	XForwardedPort  string
	Via             string

	VariablesJSON string

	// QueryText is rendered only in the string shape, as a trailing
	// "Query:" line.
	QueryText string

	// Vendor holds the vendor-compat field set. It is merged last into the
	// structured shapes and never appears in the string shape.
	Vendor map[string]any
}

// NewRecord merges request facts, optional GraphQL metadata, and the
// response outcome. When the request carried a GraphQL operation, the
// method field reports the operation type instead of the HTTP verb.
func NewRecord(req RequestFacts, op *gqlrequest.Operation, status int, delivery Delivery, elapsed time.Duration) *Record {
	micros := elapsed.Microseconds()
	rec := &Record{
		Delivery:        delivery,
		Method:          req.Method,
		Path:            req.Path,
		Status:          strconv.Itoa(status),
		DurationMicros:  micros,
		DurationHuman:   humanDuration(micros),
		DurationMS:      float64(elapsed.Nanoseconds()) / 1e6,
		ClientIP:        req.ClientIP,
		UserAgent:       req.UserAgent,
		Referer:         req.Referer,
		XForwardedFor:   req.XForwardedFor,
		XForwardedProto: req.XForwardedProto,
		XForwardedPort:  req.XForwardedPort,
		Via:             req.Via,
	}

	if op != nil {
		rec.Method = string(op.Type)
		rec.OperationName = op.Name
		rec.VariablesJSON = op.VariablesJSON
		rec.QueryText = op.QueryText
	}

	return rec
}

// humanDuration renders a microsecond diff for the string shape.
// Sub-millisecond precision is dropped above 1000µs; DurationMS keeps the
// full precision for structured output.
func humanDuration(micros int64) string {
	if micros > 1000 {
		return fmt.Sprintf("%dms", micros/1000)
	}
	return fmt.Sprintf("%dµs", micros)
}
