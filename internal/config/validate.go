package config

import (
	"fmt"
	"strings"

	"graphql-request-logger/internal/accesslog"
	"graphql-request-logger/internal/logging"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns validation
// results. Errors are fatal at setup time; nothing is deferred to request
// handling.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.Server.validate(result)
	c.AccessLog.validate(result)
	c.Observability.validate(result)

	return result
}

func (s *ServerConfig) validate(result *ValidationResult) {
	if s.Port < 1 || s.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d is out of valid range", s.Port),
			Hint:    "use a port between 1 and 65535",
		})
	}
	if s.ShutdownTimeout <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}
}

func (a *AccessLogConfig) validate(result *ValidationResult) {
	if _, err := logging.ParseLevel(a.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "access_log.level",
			Message: fmt.Sprintf("invalid level %q", a.Level),
			Hint:    "use debug, info, warn, or error",
		})
	}

	switch accesslog.Format(a.Format) {
	case accesslog.FormatString, accesslog.FormatJSON, accesslog.FormatMap:
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "access_log.format",
			Message: fmt.Sprintf("invalid format %q", a.Format),
			Hint:    "use string, json, or map",
		})
	}

	if a.SuccessLogSamplingRatio < 0 || a.SuccessLogSamplingRatio > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "access_log.success_log_sampling_ratio",
			Message: fmt.Sprintf("ratio %v is out of range", a.SuccessLogSamplingRatio),
			Hint:    "use a value between 0.0 and 1.0",
		})
	}

	for _, path := range a.IgnoredPaths {
		if !strings.HasPrefix(path, "/") {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "access_log.ignored_paths",
				Message: fmt.Sprintf("path %q does not start with /", path),
				Hint:    "ignored paths match the literal request path exactly",
			})
		}
	}

	for _, key := range a.FilterVariables {
		if strings.TrimSpace(key) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "access_log.filter_variables",
				Message: "variable key name cannot be empty",
			})
		}
	}
}

func (o *ObservabilityConfig) validate(result *ValidationResult) {
	if _, err := logging.ParseLevel(o.Logging.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.logging.level",
			Message: fmt.Sprintf("invalid level %q", o.Logging.Level),
			Hint:    "use debug, info, warn, or error",
		})
	}

	if o.Logging.Format != "json" && o.Logging.Format != "text" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.logging.format",
			Message: fmt.Sprintf("invalid format %q", o.Logging.Format),
			Hint:    "use json or text",
		})
	}

	if o.TraceSampleRatio < 0 || o.TraceSampleRatio > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.trace_sample_ratio",
			Message: fmt.Sprintf("ratio %v is out of range", o.TraceSampleRatio),
			Hint:    "use a value between 0.0 and 1.0",
		})
	}

	if o.Logging.ExportsEnabled || o.TracingEnabled {
		if o.OTLP.Endpoint == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "observability.otlp.endpoint",
				Message: "endpoint is required when OTLP export is enabled",
			})
		}
		switch strings.ToLower(strings.TrimSpace(o.OTLP.Protocol)) {
		case "", "grpc", "http", "http/protobuf":
		default:
			result.Errors = append(result.Errors, ValidationError{
				Field:   "observability.otlp.protocol",
				Message: fmt.Sprintf("unsupported protocol %q", o.OTLP.Protocol),
				Hint:    "use grpc or http/protobuf",
			})
		}
	}
}
