// Package node implements one participant in the Hirschberg-Sinclair ring
// election: its TCP listener, inbox dispatcher, phase driver, retrying
// sender, and the single-shot completion transition that reports the
// outcome to the orchestrator.
package node

import (
	"log/slog"
	"net"
	"os"
	"sync/atomic"
)

// Config describes one node's place in a scenario, matching the arguments
// the node CLI's flags assign.
type Config struct {
	N        int
	Index    int
	BasePort int
	OrchPort int
}

// Runtime is one node's full in-process state: its ring position, its
// phase state machine, its listener, inbox, and sender.
type Runtime struct {
	n        int
	basePort int
	orchPort int
	pos      position
	uid      int64

	state *state
	inbox *inbox
	opts  options

	listener     net.Listener
	shuttingDown atomic.Bool
	completed    chan struct{}

	logger *slog.Logger
}

// New constructs a Runtime for one node, applying opts over the default
// timing parameters.
func New(cfg Config, opts ...Option) *Runtime {
	var o = defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var uid int64
	if o.uidOverride != nil {
		uid = *o.uidOverride
	} else {
		uid = int64(os.Getpid())
	}

	return &Runtime{
		n:         cfg.N,
		basePort:  cfg.BasePort,
		orchPort:  cfg.OrchPort,
		pos:       newPosition(cfg.N, cfg.Index),
		uid:       uid,
		state:     newState(),
		inbox:     newInbox(),
		opts:      o,
		completed: make(chan struct{}),
		logger:    o.logger,
	}
}

// UID returns this runtime's unique identifier.
func (rt *Runtime) UID() int64 { return rt.uid }
