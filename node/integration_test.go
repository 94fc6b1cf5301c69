package node

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsring/wire"
)

// runRingScenario boots n in-process node.Runtimes over real loopback TCP,
// with synthetic UIDs 1000+index (WithUIDOverride) since os.Getpid() would
// be identical for every goroutine in this one test process. It collects
// every REPORT the ring sends to orchPort and returns them once all n
// runtimes have returned from Run, or the test's context deadline passes.
func runRingScenario(t *testing.T, n, basePort, orchPort int) []wire.Message {
	t.Helper()

	var l, err = net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(orchPort))
	require.NoError(t, err)
	defer l.Close()

	var reports = make(chan wire.Message, n)
	go func() {
		for {
			var conn, err = l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				wire.ReadLines(conn, func(m wire.Message) {
					if m.IsReportComplete() {
						reports <- m
					}
				})
			}()
		}
	}()

	var ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var runtimes = make([]*Runtime, n)
	for i := 0; i < n; i++ {
		runtimes[i] = New(Config{N: n, Index: i, BasePort: basePort, OrchPort: orchPort},
			WithUIDOverride(int64(1000+i)),
			WithStartupGrace(20*time.Millisecond),
			WithPollInterval(2*time.Millisecond),
			WithPhaseTimeout(3*time.Second),
			WithRetryBudgets(100, 10*time.Millisecond, 50, 20*time.Millisecond),
		)
	}

	var wg sync.WaitGroup
	for _, rt := range runtimes {
		wg.Add(1)
		go func(rt *Runtime) {
			defer wg.Done()
			rt.Run(ctx)
		}(rt)
	}
	wg.Wait()

	var got = make([]wire.Message, 0, n)
	for len(got) < n {
		select {
		case m := <-reports:
			got = append(got, m)
		case <-time.After(time.Second):
			return got
		}
	}
	return got
}

func TestElectionSingleNode(t *testing.T) {
	t.Parallel()

	// Arrange & Act
	var reports = runRingScenario(t, 1, 61000, 41001)

	// Assert
	require.Len(t, reports, 1)
	assert.Equal(t, int64(1000), reports[0].UID)
	assert.Equal(t, int64(1000), reports[0].WinnerOrDefault(-1))
}

func TestElectionTwoNodes(t *testing.T) {
	t.Parallel()

	// Arrange & Act
	var reports = runRingScenario(t, 2, 62000, 42002)

	// Assert
	require.Len(t, reports, 2)
	assertUnanimousWinner(t, reports, 1001)
}

func TestElectionTenNodes(t *testing.T) {
	t.Parallel()

	// Arrange & Act
	var reports = runRingScenario(t, 10, 63000, 43010)

	// Assert
	require.Len(t, reports, 10)
	assertUnanimousWinner(t, reports, 1009)

	for _, r := range reports {
		assert.GreaterOrEqual(t, r.RoundsOrZero(), 1)
	}
}

// assertUnanimousWinner checks the Agreement and Validity properties:
// every report names the same winner, and that winner is the expected
// largest UID in the ring.
func assertUnanimousWinner(t *testing.T, reports []wire.Message, expectedWinner int64) {
	t.Helper()
	for _, r := range reports {
		assert.Equal(t, expectedWinner, r.WinnerOrDefault(-1), "uid %d disagreed on the winner", r.UID)
	}
}
