// Package config loads and validates server configuration from flags,
// environment variables, config files, and defaults.
package config

import (
	"time"

	"graphql-request-logger/internal/gqlrequest"
)

// Config holds the application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	AccessLog     AccessLogConfig     `mapstructure:"access_log"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	GraphiQLEnabled bool          `mapstructure:"graphiql_enabled"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AccessLogConfig holds the options recognized by the access-log
// middleware. Invalid values are fatal at setup time; nothing here is
// re-validated per request.
type AccessLogConfig struct {
	// Level is the severity tag attached to every emitted line.
	Level string `mapstructure:"level"`
	// Format selects the output shape: string, json, or map.
	Format string `mapstructure:"format"`
	// IgnoredPaths lists exact-match paths suppressed on success.
	IgnoredPaths []string `mapstructure:"ignored_paths"`
	// IncludeVariables attaches filtered GraphQL variables to the line.
	IncludeVariables bool `mapstructure:"include_variables"`
	// FilterVariables is the deny list of variable key names to redact.
	FilterVariables []string `mapstructure:"filter_variables"`
	// IncludeUnnamedQueries attaches the raw query text when no operation
	// name could be resolved.
	IncludeUnnamedQueries bool `mapstructure:"include_unnamed_queries"`
	// SuccessLogSamplingRatio is the fraction of successful requests that
	// are logged, in [0, 1]. Errors always log.
	SuccessLogSamplingRatio float64 `mapstructure:"success_log_sampling_ratio"`
	// IncludeVendorFields adds the vendor-compat key set to structured
	// output shapes.
	IncludeVendorFields bool `mapstructure:"include_vendor_fields"`
}

// ObservabilityConfig holds OTLP export and sink-logging parameters.
type ObservabilityConfig struct {
	ServiceName      string        `mapstructure:"service_name"`
	ServiceVersion   string        `mapstructure:"service_version"`
	Environment      string        `mapstructure:"environment"`
	TracingEnabled   bool          `mapstructure:"tracing_enabled"`
	TraceSampleRatio float64       `mapstructure:"trace_sample_ratio"`
	Logging          LoggingConfig `mapstructure:"logging"`
	OTLP             OTLPConfig    `mapstructure:"otlp"`
}

// LoggingConfig controls the log sink the access log writes through.
type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	Format         string `mapstructure:"format"`
	ExportsEnabled bool   `mapstructure:"exports_enabled"`
}

// OTLPConfig holds shared OTLP exporter options for logs and traces.
type OTLPConfig struct {
	Endpoint          string            `mapstructure:"endpoint"`
	Protocol          string            `mapstructure:"protocol"`
	Insecure          bool              `mapstructure:"insecure"`
	TLSCertFile       string            `mapstructure:"tls_cert_file"`
	TLSClientCertFile string            `mapstructure:"tls_client_cert_file"`
	TLSClientKeyFile  string            `mapstructure:"tls_client_key_file"`
	Headers           map[string]string `mapstructure:"headers"`
	Timeout           time.Duration     `mapstructure:"timeout"`
}

// DefaultFilterVariables is the default deny list for variable redaction.
func DefaultFilterVariables() []string {
	return gqlrequest.DefaultFilteredVariables()
}
