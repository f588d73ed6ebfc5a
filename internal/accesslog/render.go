package accesslog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// formatFallbackPrefix marks lines whose structured payload could not be
// serialized, so operators can spot degraded output.
const formatFallbackPrefix = "[access log format error]"

// Line renders the human-readable shape:
//
//	<method> <name-or-path>[ (<path>)][ with <vars>] - <Sent|Chunked> <status> in <dur>[\nQuery: <text>]
//
// The parenthesized path appears only when an operation name exists and
// differs from the literal path.
func (r *Record) Line() string {
	var b strings.Builder

	b.WriteString(r.Method)
	b.WriteByte(' ')
	if r.OperationName != "" {
		b.WriteString(r.OperationName)
		if r.OperationName != r.Path {
			b.WriteString(" (")
			b.WriteString(r.Path)
			b.WriteByte(')')
		}
	} else {
		b.WriteString(r.Path)
	}

	if r.VariablesJSON != "" {
		b.WriteString(" with ")
		b.WriteString(r.VariablesJSON)
	}

	fmt.Fprintf(&b, " - %s %s in %s", r.Delivery, r.Status, r.DurationHuman)

	if r.QueryText != "" {
		b.WriteString("\nQuery: ")
		b.WriteString(r.QueryText)
	}

	return b.String()
}

// Map returns the structured shape with absent fields dropped entirely:
// missing values are omitted, never emitted as null. Vendor-compat fields
// merge last, so in vendor mode the vendor's meaning wins for any key both
// sets define (notably "duration", which the vendor scales to nanoseconds).
func (r *Record) Map() map[string]any {
	fields := []struct {
		key   string
		value any
	}{
		{"delivery", string(r.Delivery)},
		{"method", r.Method},
		{"path", r.Path},
		{"operation_name", r.OperationName},
		{"status", r.Status},
		{"duration", r.DurationMicros},
		{"duration_ms", r.DurationMS},
		{"client_ip", r.ClientIP},
		{"user_agent", r.UserAgent},
		{"referer", r.Referer},
		{"x_forwarded_for", r.XForwardedFor},
		{"x_forwarded_proto", r.XForwardedProto},
		{"x_forwarded_port", r.XForwardedPort},
		{"via", r.Via},
		{"variables", r.VariablesJSON},
	}

	out := make(map[string]any, len(fields)+len(r.Vendor))
	for _, f := range fields {
		if s, ok := f.value.(string); ok && s == "" {
			continue
		}
		out[f.key] = f.value
	}
	for k, v := range r.Vendor {
		out[k] = v
	}
	return out
}

// RenderJSON encodes the structured shape to text. A payload that cannot be
// serialized falls back to a prefixed best-effort debug rendering so the
// operator still gets a line; rendering never fails.
func RenderJSON(fields map[string]any) string {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprintf("%s %+v", formatFallbackPrefix, fields)
	}
	return string(encoded)
}
