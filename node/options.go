package node

import (
	"io"
	"log/slog"
	"time"
)

// options configures a Runtime's timing and logging behavior.
type options struct {
	startupGrace   time.Duration
	phaseTimeout   time.Duration
	pollInterval   time.Duration
	protoAttempts  int
	protoBackoff   time.Duration
	reportAttempts int
	reportBackoff  time.Duration
	logger         *slog.Logger

	// uidOverride lets an in-process test harness assign a synthetic UID
	// instead of deriving one from os.Getpid(). Production callers (cmd/hsnode)
	// never set this: production nodes derive their UID from the OS.
	uidOverride *int64
}

// defaultOptions returns the suggested timing defaults.
func defaultOptions() options {
	return options{
		startupGrace:   2 * time.Second,
		phaseTimeout:   5 * time.Second,
		pollInterval:   50 * time.Millisecond,
		protoAttempts:  200,
		protoBackoff:   50 * time.Millisecond,
		reportAttempts: 100,
		reportBackoff:  100 * time.Millisecond,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring a Runtime.
type Option func(*options)

// WithLogger sets the logger a Runtime uses for diagnostics.
// If the logger is nil, the Runtime falls back to a no-op logger.
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

// WithPhaseTimeout overrides the per-phase acknowledgement timeout.
func WithPhaseTimeout(d time.Duration) Option {
	return func(o *options) { o.phaseTimeout = d }
}

// WithStartupGrace overrides the delay before phase 0 begins.
func WithStartupGrace(d time.Duration) Option {
	return func(o *options) { o.startupGrace = d }
}

// WithPollInterval overrides how often the phase driver polls ack state.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithRetryBudgets overrides the sender's retry attempts/backoff for
// protocol messages (to ring peers) and the REPORT message (to the
// orchestrator) independently.
func WithRetryBudgets(protoAttempts int, protoBackoff time.Duration, reportAttempts int, reportBackoff time.Duration) Option {
	return func(o *options) {
		o.protoAttempts = protoAttempts
		o.protoBackoff = protoBackoff
		o.reportAttempts = reportAttempts
		o.reportBackoff = reportBackoff
	}
}

// WithUIDOverride assigns a synthetic UID instead of deriving one from
// os.Getpid(). Only an in-process harness that runs several Runtimes in one
// OS process (where os.Getpid() would be identical for all of them) should
// ever use this; cmd/hsnode never does, since a production node's UID is
// always OS-assigned.
func WithUIDOverride(uid int64) Option {
	return func(o *options) { o.uidOverride = &uid }
}
