package middleware

import (
	"net/http"
	"strings"

	"graphql-request-logger/internal/accesslog"
)

// responseWriter wraps http.ResponseWriter to capture the status code and
// whether the response was streamed to the client.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	flushed    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		rw.flushed = true
		f.Flush()
	}
}

func (rw *responseWriter) Status() int {
	return rw.statusCode
}

// Delivery reports Chunked when the handler streamed the response, either
// by flushing explicitly or by declaring a chunked transfer encoding.
func (rw *responseWriter) Delivery() accesslog.Delivery {
	if rw.flushed || strings.EqualFold(rw.Header().Get("Transfer-Encoding"), "chunked") {
		return accesslog.DeliveryChunked
	}
	return accesslog.DeliverySent
}
