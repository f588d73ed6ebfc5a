package serverapp

import (
	"context"
	"log/slog"

	"graphql-request-logger/internal/logging"
)

// shutdownStep is a named resource release recorded during Init.
type shutdownStep struct {
	name    string
	release func(context.Context) error
}

// releaseSteps runs steps in reverse registration order so dependents
// close before what they rely on. A failed step is logged and does not
// stop the remaining steps.
func releaseSteps(ctx context.Context, logger *logging.Logger, steps []shutdownStep) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		logger.Info("shutting down " + step.name)
		if err := step.release(ctx); err != nil {
			logger.Warn("shutdown step failed",
				slog.String("component", step.name),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Shutdown releases all acquired resources. Repeat calls are no-ops.
func (a *App) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.shutdownOnce.Do(func() {
		a.stateMu.Lock()
		steps := a.shutdownSteps
		a.started = false
		a.stateMu.Unlock()

		releaseSteps(ctx, a.logger, steps)
	})

	return nil
}
