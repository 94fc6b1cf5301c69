package node

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Run drives one node's full lifecycle: bind the listener, start the inbox
// dispatcher and accept loop, wait out the startup grace period, then run
// the phase driver until either this node (or a neighbor, relayed via
// ANNOUNCE) completes, or this node's own phase times out.
//
// Run returns nil once this node has sent its one REPORT (or, on a phase
// timeout, once it has abandoned the election without reporting — a phase
// timeout is diagnostic-only, so this is not itself an error the
// caller need surface beyond logging). It returns a non-nil error only if
// ctx is cancelled or the listener fails to bind.
func (rt *Runtime) Run(ctx context.Context) error {
	if err := rt.listen(); err != nil {
		return fmt.Errorf("node: failed to bind listener: %w", err)
	}

	rt.logger.Info("node listening", "node_id", rt.uid, "index", rt.pos.index, "n", rt.n)

	go rt.acceptLoop()
	go rt.dispatchLoop(ctx)

	select {
	case <-time.After(rt.opts.startupGrace):
	case <-ctx.Done():
		return ctx.Err()
	}

	var err = rt.runPhaseDriver(ctx)
	if err != nil {
		// Timeout or cancellation: this node never completes and never
		// reports. Tear down directly since no handler will call complete().
		rt.shuttingDown.Store(true)
		rt.listener.Close()
		rt.inbox.close()
		if errors.Is(err, ErrPhaseTimeout) {
			return nil
		}
		return err
	}

	select {
	case <-rt.completed:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
