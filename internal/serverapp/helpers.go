package serverapp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"graphql-request-logger/internal/accesslog"
	"graphql-request-logger/internal/config"
	"graphql-request-logger/internal/logging"
	"graphql-request-logger/internal/middleware"
	"graphql-request-logger/internal/observability"

	gqlhandler "github.com/graphql-go/handler"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func InitLogger(cfg *config.Config) (*logging.Logger, *observability.LoggerProvider, error) {
	loggerCfg := logging.Config{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	}
	logger, err := logging.NewLogger(loggerCfg)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger.Logger)

	if !cfg.Observability.Logging.ExportsEnabled {
		return logger, nil, nil
	}

	logger.Info("initializing OpenTelemetry logging",
		slog.String("service_name", cfg.Observability.ServiceName),
		slog.String("service_version", cfg.Observability.ServiceVersion),
		slog.String("environment", cfg.Observability.Environment),
		slog.String("otlp_endpoint", cfg.Observability.OTLP.Endpoint),
		slog.String("otlp_protocol", cfg.Observability.OTLP.Protocol),
		slog.Bool("insecure", cfg.Observability.OTLP.Insecure),
	)

	loggerProvider, err := observability.InitLoggerProvider(otelConfig(cfg))
	if err != nil {
		return nil, nil, err
	}

	logger.Info("OpenTelemetry logging initialized successfully")

	// Rebuild the logger so records fan out to the OTLP bridge as well.
	loggerCfg.LoggerProvider = loggerProvider.Provider()
	logger, err = logging.NewLogger(loggerCfg)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger.Logger)

	return logger, loggerProvider, nil
}

func initTracing(cfg *config.Config, logger *logging.Logger) (*observability.TracerProvider, error) {
	if !cfg.Observability.TracingEnabled {
		return nil, nil
	}

	logger.Info("initializing OpenTelemetry tracing",
		slog.String("service_name", cfg.Observability.ServiceName),
		slog.String("service_version", cfg.Observability.ServiceVersion),
		slog.String("environment", cfg.Observability.Environment),
		slog.String("otlp_endpoint", cfg.Observability.OTLP.Endpoint),
		slog.String("otlp_protocol", cfg.Observability.OTLP.Protocol),
		slog.Bool("insecure", cfg.Observability.OTLP.Insecure),
	)

	tracerProvider, err := observability.InitTracerProvider(otelConfig(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info("OpenTelemetry tracing initialized successfully")

	return tracerProvider, nil
}

func otelConfig(cfg *config.Config) observability.Config {
	return observability.Config{
		ServiceName:      cfg.Observability.ServiceName,
		ServiceVersion:   cfg.Observability.ServiceVersion,
		Environment:      cfg.Observability.Environment,
		TraceSampleRatio: cfg.Observability.TraceSampleRatio,
		OTLPConfig: observability.OTLPExporterConfig{
			Endpoint:          cfg.Observability.OTLP.Endpoint,
			Protocol:          cfg.Observability.OTLP.Protocol,
			Insecure:          cfg.Observability.OTLP.Insecure,
			TLSCertFile:       cfg.Observability.OTLP.TLSCertFile,
			TLSClientCertFile: cfg.Observability.OTLP.TLSClientCertFile,
			TLSClientKeyFile:  cfg.Observability.OTLP.TLSClientKeyFile,
			Headers:           cfg.Observability.OTLP.Headers,
			Timeout:           cfg.Observability.OTLP.Timeout,
		},
	}
}

func buildGraphQLHandler(cfg *config.Config, logger *logging.Logger) (http.Handler, error) {
	schema, err := buildSchema(logger)
	if err != nil {
		return nil, err
	}

	h := gqlhandler.New(&gqlhandler.Config{
		Schema:   schema,
		Pretty:   true,
		GraphiQL: cfg.Server.GraphiQLEnabled,
	})
	if cfg.Server.GraphiQLEnabled {
		logger.Info("GraphiQL UI enabled", slog.String("path", "/graphql"))
	}

	return h, nil
}

func buildRouter(cfg *config.Config, graphqlHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/graphql", graphqlHandler)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/graphql", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})

	mux.HandleFunc("/health", healthHandler())

	return mux
}

// wrapHTTPHandler builds the middleware chain:
//
//	request -> otelhttp -> access log -> mux
//
// otelhttp runs outermost so the server span is already in context when
// the access log resolves trace correlation fields.
func wrapHTTPHandler(cfg *config.Config, logger *logging.Logger, handler http.Handler) (http.Handler, error) {
	level, err := logging.ParseLevel(cfg.AccessLog.Level)
	if err != nil {
		return nil, err
	}

	handler = middleware.AccessLog(logger, middleware.AccessLogOptions{
		Level:                 level,
		Format:                accesslog.Format(cfg.AccessLog.Format),
		IgnoredPaths:          cfg.AccessLog.IgnoredPaths,
		IncludeVariables:      cfg.AccessLog.IncludeVariables,
		FilteredVariables:     cfg.AccessLog.FilterVariables,
		IncludeUnnamedQueries: cfg.AccessLog.IncludeUnnamedQueries,
		SamplingRatio:         cfg.AccessLog.SuccessLogSamplingRatio,
		IncludeVendorFields:   cfg.AccessLog.IncludeVendorFields,
	})(handler)

	if cfg.Observability.TracingEnabled {
		handler = otelhttp.NewHandler(handler, "http.server",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return httpRootSpanName(r)
			}),
			otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
		)
		logger.Info("HTTP instrumentation enabled")
	}

	return handler, nil
}

func httpRootSpanName(r *http.Request) string {
	if r == nil {
		return "HTTP /*"
	}

	method := strings.TrimSpace(r.Method)
	if method == "" {
		method = "HTTP"
	}

	return method + " " + normalizeHTTPSpanRoute(r.URL.Path)
}

func normalizeHTTPSpanRoute(rawPath string) string {
	switch rawPath {
	case "/", "/graphql", "/health":
		return rawPath
	default:
		return "/*"
	}
}

func buildServer(cfg *config.Config, handler http.Handler, serverAddr string) *http.Server {
	return &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// healthHandler returns an HTTP handler for health checks
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logging.FromContext(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"status":"healthy"}`)

		reqLogger.Debug("health check passed")
	}
}
