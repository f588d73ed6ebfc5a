package serverapp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
)

// Start launches the HTTP listener in a background goroutine. Init must
// have succeeded first. Listener failures surface through Wait.
func (a *App) Start() error {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()

	if !a.initialized {
		return fmt.Errorf("app is not initialized")
	}
	if a.started {
		return nil
	}

	a.logger.Info("server starting",
		slog.String("address", a.serverAddr),
		slog.String("graphql_endpoint", "/graphql"),
		slog.String("health_endpoint", "/health"),
		slog.String("access_log_format", a.cfg.AccessLog.Format),
		slog.Float64("success_log_sampling_ratio", a.cfg.AccessLog.SuccessLogSamplingRatio),
	)

	a.serverErrors = make(chan error, 1)
	srv, errs := a.srv, a.serverErrors
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("listener failed: %w", err)
		}
	}()

	a.started = true
	return nil
}

// Wait blocks until an OS signal arrives or the listener fails. A signal
// is a clean stop; a listener failure is returned as the error.
func (a *App) Wait(stop <-chan os.Signal) error {
	a.stateMu.Lock()
	errs := a.serverErrors
	a.stateMu.Unlock()

	if errs == nil {
		return fmt.Errorf("app is not started")
	}

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		a.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		return nil
	}
}
