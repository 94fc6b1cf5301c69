package node

import (
	"context"
	"errors"
	"time"

	"hsring/wire"
)

// ErrPhaseTimeout is returned by the phase driver when a phase's
// acknowledgements don't both arrive within the phase timeout. This node
// never completes: no REPORT is sent, and the scenario is observed to fail
// at the orchestrator as a missing report.
var ErrPhaseTimeout = errors.New("node: phase acknowledgement timed out")

// runPhaseDriver runs phases 0, 1, 2, ... until a winner is observed or a
// phase times out.
func (rt *Runtime) runPhaseDriver(ctx context.Context) error {
	for p := 0; ; p++ {
		if _, ok := rt.state.winner(); ok {
			return nil
		}
		if !rt.state.isActive() {
			return nil
		}

		rt.state.startPhase(p)

		var distance = 1 << p
		rt.sendProtocol(ctx, rt.pos.leftPort(rt.basePort), wire.NewOut(rt.uid, p, distance, wire.Left, rt.pos.index))
		rt.sendProtocol(ctx, rt.pos.rightPort(rt.basePort), wire.NewOut(rt.uid, p, distance, wire.Right, rt.pos.index))

		var advanced, err = rt.awaitPhaseAcks(ctx, p)
		if err != nil {
			rt.state.setInactive()
			rt.logger.Warn("phase timed out, abandoning election without reporting",
				"node_id", rt.uid, "phase", p)
			return err
		}
		if !advanced {
			// Winner observed mid-poll; the handler that set it already
			// ran (or is running) the completion transition.
			return nil
		}

		rt.state.advancePhase(p)
	}
}

// awaitPhaseAcks polls phaseAcks[p] at rt.opts.pollInterval until both acks
// arrive (returns true, nil), a winner is observed elsewhere (returns
// false, nil), or rt.opts.phaseTimeout elapses (returns false,
// ErrPhaseTimeout).
func (rt *Runtime) awaitPhaseAcks(ctx context.Context, p int) (bool, error) {
	var (
		deadline = time.After(rt.opts.phaseTimeout)
		ticker   = time.NewTicker(rt.opts.pollInterval)
	)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline:
			return false, ErrPhaseTimeout
		case <-ticker.C:
			if _, ok := rt.state.winner(); ok {
				return false, nil
			}
			if rt.state.acksComplete(p) {
				return true, nil
			}
		}
	}
}
