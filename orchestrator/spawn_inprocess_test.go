package orchestrator

import (
	"context"
	"time"

	"hsring/node"
)

// inProcessSpawner runs each node as a goroutine-hosted node.Runtime instead
// of a real OS process, so scenario-level tests can exercise RunScenario's
// full launch/collect/validate pipeline over real loopback TCP without
// building or executing the hsnode binary. Synthetic UIDs are assigned
// because every "process" here shares one os.Getpid().
type inProcessSpawner struct {
	nextUID int64
}

func (s *inProcessSpawner) Spawn(ctx context.Context, n, index, basePort, orchPort int) (Handle, error) {
	s.nextUID++
	var uid = s.nextUID

	var rt = node.New(node.Config{N: n, Index: index, BasePort: basePort, OrchPort: orchPort},
		node.WithUIDOverride(uid),
		node.WithStartupGrace(20*time.Millisecond),
		node.WithPollInterval(2*time.Millisecond),
		node.WithPhaseTimeout(3*time.Second),
		node.WithRetryBudgets(100, 10*time.Millisecond, 50, 20*time.Millisecond),
	)

	var runCtx, cancel = context.WithCancel(ctx)
	var done = make(chan error, 1)
	go func() { done <- rt.Run(runCtx) }()

	return &inProcessHandle{uid: rt.UID(), cancel: cancel, done: done}, nil
}

type inProcessHandle struct {
	uid    int64
	cancel context.CancelFunc
	done   chan error
}

func (h *inProcessHandle) UID() int64 { return h.uid }

func (h *inProcessHandle) Wait(ctx context.Context) error {
	select {
	case err := <-h.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *inProcessHandle) Kill() error {
	h.cancel()
	return nil
}
