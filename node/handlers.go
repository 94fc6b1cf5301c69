package node

import (
	"context"

	"hsring/wire"
)

// dispatchLoop is the single-consumer inbox dispatcher. It
// processes envelopes strictly in FIFO arrival order and terminates
// immediately once the completion flag is set, even with envelopes still
// queued.
func (rt *Runtime) dispatchLoop(ctx context.Context) {
	for {
		var e, ok = rt.inbox.pop()
		if !ok {
			return
		}
		if rt.state.completionFlag.Load() {
			return
		}

		rt.handle(ctx, e)
	}
}

func (rt *Runtime) handle(ctx context.Context, e wire.Envelope) {
	switch e.Msg.Type {
	case wire.Out:
		rt.handleOut(ctx, e.Msg)
	case wire.In:
		rt.handleIn(ctx, e.Msg)
	case wire.Announce:
		rt.handleAnnounce(ctx, e.Msg)
	default:
		// Unknown or REPORT (never addressed to a node) — dropped.
	}
}

// handleOut implements the inbound OUT routing rules.
func (rt *Runtime) handleOut(ctx context.Context, m wire.Message) {
	var (
		u = m.UID
		p = m.PhaseOrZero()
		t = m.TTLOrZero()
		d = m.Dir
	)

	switch {
	case u < rt.uid:
		// Smaller probe swallowed.
		return

	case u == rt.uid:
		rt.onSelfRecognition(ctx, p)

	case t > 1:
		rt.sendProtocol(ctx, rt.portForDir(d), wire.NewOut(u, p, t-1, d, rt.pos.index))

	default: // t == 1
		rt.sendProtocol(ctx, rt.oppositePortForDir(d), wire.NewIn(u, p, d, rt.pos.index))
	}
}

// handleIn implements the inbound IN routing rules.
func (rt *Runtime) handleIn(ctx context.Context, m wire.Message) {
	var (
		u = m.UID
		p = m.PhaseOrZero()
		d = m.Dir
	)

	if u != rt.uid {
		rt.sendProtocol(ctx, rt.oppositePortForDir(d), wire.NewIn(u, p, d, rt.pos.index))
		return
	}

	rt.state.setAck(p, d == wire.Right)
}

// handleAnnounce implements the inbound ANNOUNCE routing rules.
func (rt *Runtime) handleAnnounce(ctx context.Context, m wire.Message) {
	var winner = m.WinnerOrDefault(-1)
	rt.state.trySetWinner(winner)

	// Re-emission precedes completion so neighbors receive the relay even
	// if this node is about to shut down.
	rt.sendProtocol(ctx, rt.portForDir(m.Dir), wire.NewAnnounce(m.UID, winner, m.Dir, rt.pos.index))

	rt.complete(ctx)
}

// onSelfRecognition handles a returning OUT that originated from this
// node: this node is the largest UID in its accumulated neighborhood, so it
// wins.
func (rt *Runtime) onSelfRecognition(ctx context.Context, phase int) {
	if !rt.state.trySetWinner(rt.uid) {
		return
	}
	rt.state.bumpRounds(phase + 1)

	rt.sendProtocol(ctx, rt.pos.leftPort(rt.basePort), wire.NewAnnounce(rt.uid, rt.uid, wire.Left, rt.pos.index))
	rt.sendProtocol(ctx, rt.pos.rightPort(rt.basePort), wire.NewAnnounce(rt.uid, rt.uid, wire.Right, rt.pos.index))

	rt.complete(ctx)
}

// portForDir resolves the directional label on a message to the physical
// neighbor port it designates.
func (rt *Runtime) portForDir(d wire.Dir) int {
	if d == wire.Right {
		return rt.pos.rightPort(rt.basePort)
	}
	return rt.pos.leftPort(rt.basePort)
}

// oppositePortForDir resolves the directional label to the neighbor on the
// opposite side, used when reflecting or relaying an IN back toward its
// probe's originator.
func (rt *Runtime) oppositePortForDir(d wire.Dir) int {
	if d == wire.Right {
		return rt.pos.leftPort(rt.basePort)
	}
	return rt.pos.rightPort(rt.basePort)
}
