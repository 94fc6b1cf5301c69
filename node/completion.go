package node

import (
	"context"

	"hsring/wire"
)

// complete is the single-shot completion transition: compare-and-set
// completionFlag from false to true, send exactly one REPORT, then tear
// down the listener and inbox dispatcher. A second call is a no-op.
func (rt *Runtime) complete(ctx context.Context) {
	if !rt.state.completionFlag.CompareAndSwap(false, true) {
		return
	}

	var winner, _ = rt.state.winner()
	var report = wire.NewReport(rt.uid, winner, rt.state.rounds(), rt.state.messages())

	rt.sendReport(ctx, report)

	rt.shutdown()
	close(rt.completed)
}

// shutdown tears down the listener and inbox so the accept loop and
// dispatch loop both exit. Safe to call once; callers only ever reach it
// through complete's CAS guard.
func (rt *Runtime) shutdown() {
	rt.shuttingDown.Store(true)
	if rt.listener != nil {
		rt.listener.Close()
	}
	rt.inbox.close()
}
