package node

import (
	"context"
	"net"
	"strconv"
	"time"

	"hsring/wire"
)

// retryBudget names how many attempts a send gets and the fixed delay
// between them.
type retryBudget struct {
	attempts int
	backoff  time.Duration
}

// send opens a fresh TCP connection to loopback:port, writes m as a single
// line of JSON, and closes. On I/O failure it waits backoff and retries, up
// to budget.attempts times. Exhaustion returns silently: the message is
// lost and the upper layer (the phase driver's timeout) must tolerate that.
func (rt *Runtime) send(ctx context.Context, port int, m wire.Message, budget retryBudget) {
	var addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	for attempt := 0; attempt < budget.attempts; attempt++ {
		if ctx.Err() != nil {
			return
		}

		var conn, err = net.Dial("tcp", addr)
		if err == nil {
			err = wire.WriteMessage(conn, m)
			conn.Close()
		}

		if err == nil {
			rt.state.incMessagesSent()
			return
		}

		select {
		case <-time.After(budget.backoff):
		case <-ctx.Done():
			return
		}
	}

	rt.logger.Warn("send exhausted retry budget, message lost",
		"node_id", rt.uid,
		"type", m.Type,
		"target_port", port,
		"attempts", budget.attempts)
}

// sendProtocol sends a ring-to-ring message (OUT/IN/ANNOUNCE) using the
// protocol retry budget.
func (rt *Runtime) sendProtocol(ctx context.Context, port int, m wire.Message) {
	rt.send(ctx, port, m, rt.opts.protocolBudget())
}

// sendReport sends the terminal REPORT to the orchestrator using the
// report retry budget.
func (rt *Runtime) sendReport(ctx context.Context, m wire.Message) {
	rt.send(ctx, rt.orchPort, m, rt.opts.reportBudget())
}

func (o options) protocolBudget() retryBudget {
	return retryBudget{attempts: o.protoAttempts, backoff: o.protoBackoff}
}

func (o options) reportBudget() retryBudget {
	return retryBudget{attempts: o.reportAttempts, backoff: o.reportBackoff}
}
