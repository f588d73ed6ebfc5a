package accesslog

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"graphql-request-logger/internal/logging"
)

func TestVendorFields_BaseSet(t *testing.T) {
	facts := RequestFacts{
		Method:   "POST",
		Scheme:   "https",
		Host:     "api.example.com",
		Path:     "/graphql",
		ClientIP: "10.0.0.1:52310",
		Referer:  "https://app.example.com/",
	}

	fields := VendorFields(context.Background(), facts, 200, 2*time.Millisecond)

	if fields["http.url"] != "https://api.example.com/graphql" {
		t.Fatalf("http.url = %v, want full request URL", fields["http.url"])
	}
	if fields["http.method"] != "POST" {
		t.Fatalf("http.method = %v, want literal HTTP method", fields["http.method"])
	}
	if fields["http.status_code"] != 200 {
		t.Fatalf("http.status_code = %v (%T), want integer 200", fields["http.status_code"], fields["http.status_code"])
	}
	if fields["duration"] != int64(2000000) {
		t.Fatalf("duration = %v, want nanoseconds", fields["duration"])
	}
	if fields["network.client.ip"] != "10.0.0.1:52310" {
		t.Fatalf("network.client.ip = %v", fields["network.client.ip"])
	}
	if fields["http.referer"] != "https://app.example.com/" {
		t.Fatalf("http.referer = %v", fields["http.referer"])
	}
	if _, present := fields["http.request_id"]; present {
		t.Fatalf("http.request_id should be absent without request context")
	}
	if _, present := fields["dd.trace_id"]; present {
		t.Fatalf("dd.trace_id should be absent without an active span")
	}
}

func TestVendorFields_CorrelationIdentifiers(t *testing.T) {
	ctx := logging.WithRequestIDContext(context.Background(), "req-123")

	traceID, _ := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	spanID, _ := trace.SpanIDFromHex("0123456789abcdef")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx = trace.ContextWithSpanContext(ctx, sc)

	fields := VendorFields(ctx, RequestFacts{Method: "GET", Path: "/"}, 200, time.Millisecond)

	if fields["http.request_id"] != "req-123" {
		t.Fatalf("http.request_id = %v, want req-123", fields["http.request_id"])
	}
	if fields["dd.trace_id"] != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("dd.trace_id = %v", fields["dd.trace_id"])
	}
}

func TestRequestURL(t *testing.T) {
	tests := []struct {
		name  string
		facts RequestFacts
		want  string
	}{
		{
			name:  "scheme and host",
			facts: RequestFacts{Scheme: "https", Host: "api.example.com", Path: "/graphql"},
			want:  "https://api.example.com/graphql",
		},
		{
			name:  "host without scheme",
			facts: RequestFacts{Host: "localhost:8080", Path: "/health"},
			want:  "http://localhost:8080/health",
		},
		{
			name:  "no host falls back to path",
			facts: RequestFacts{Path: "/graphql"},
			want:  "/graphql",
		},
	}

	for _, tt := range tests {
		if got := requestURL(tt.facts); got != tt.want {
			t.Fatalf("%s: requestURL() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestVendorFields_RefererOmittedWhenEmpty(t *testing.T) {
	fields := VendorFields(context.Background(), RequestFacts{Method: "GET", Path: "/"}, 204, time.Millisecond)
	if _, present := fields["http.referer"]; present {
		t.Fatalf("empty referer should be omitted")
	}
}
