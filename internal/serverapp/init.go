package serverapp

import (
	"context"
	"fmt"
)

// Init initializes all runtime resources. It is idempotent.
func (a *App) Init(ctx context.Context) error {
	a.stateMu.Lock()
	if a.initialized {
		a.stateMu.Unlock()
		return nil
	}
	a.stateMu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	var steps []shutdownStep
	success := false
	defer func() {
		if !success {
			releaseSteps(context.Background(), a.logger, steps)
		}
	}()

	if a.loggerProvider != nil {
		steps = append(steps, shutdownStep{name: "logger provider", release: func(shutdownCtx context.Context) error {
			return a.loggerProvider.Shutdown(shutdownCtx, a.logger.Logger)
		}})
	}

	tracerProvider, err := initTracing(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry tracing: %w", err)
	}
	if tracerProvider != nil {
		steps = append(steps, shutdownStep{name: "tracer provider", release: func(shutdownCtx context.Context) error {
			return tracerProvider.Shutdown(shutdownCtx, a.logger.Logger)
		}})
	}

	graphqlHandler, err := buildGraphQLHandler(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize GraphQL handler: %w", err)
	}

	mux := buildRouter(a.cfg, graphqlHandler)

	handler, err := wrapHTTPHandler(a.cfg, a.logger, mux)
	if err != nil {
		return fmt.Errorf("failed to build HTTP middleware chain: %w", err)
	}

	serverAddr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	srv := buildServer(a.cfg, handler, serverAddr)
	steps = append(steps, shutdownStep{name: "HTTP server", release: func(shutdownCtx context.Context) error {
		return srv.Shutdown(shutdownCtx)
	}})

	a.stateMu.Lock()
	a.tracerProvider = tracerProvider
	a.graphqlHandler = graphqlHandler
	a.mux = mux
	a.handler = handler
	a.serverAddr = serverAddr
	a.srv = srv
	a.shutdownSteps = steps
	a.initialized = true
	a.stateMu.Unlock()

	success = true
	return nil
}
