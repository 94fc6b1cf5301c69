package orchestrator

import (
	"io"
	"log/slog"
	"time"
)

// options configures an orchestrator run's timing and logging behavior.
type options struct {
	scenarioDeadline time.Duration
	childExitTimeout time.Duration
	logger           *slog.Logger
}

// defaultOptions returns the suggested timing defaults.
func defaultOptions() options {
	return options{
		scenarioDeadline: 30 * time.Second,
		childExitTimeout: 5 * time.Second,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring a scenario run.
type Option func(*options)

// WithLogger sets the logger used for scenario diagnostics.
// If the logger is nil, the orchestrator falls back to a no-op logger.
// DEFAULT: a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			return
		}
		o.logger = logger
	}
}

// WithScenarioDeadline overrides the time budget for collecting reports.
func WithScenarioDeadline(d time.Duration) Option {
	return func(o *options) { o.scenarioDeadline = d }
}

// WithChildExitTimeout overrides how long a scenario waits for a spawned
// node to exit on its own before it is killed.
func WithChildExitTimeout(d time.Duration) Option {
	return func(o *options) { o.childExitTimeout = d }
}
