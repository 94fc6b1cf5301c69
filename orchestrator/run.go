// Package orchestrator launches the N node processes of one Hirschberg-
// Sinclair election scenario, collects their terminal reports over TCP,
// and cross-checks them into a pass/fail verdict.
package orchestrator

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"hsring/wire"
)

// RunScenario launches sc.N nodes via spawner, collects their REPORTs, and
// validates the outcome. It returns a non-nil error only when the scenario
// could not even be attempted (e.g. the report listener failed to bind); a
// launch failure, timeout, or disagreement among nodes is reported through
// Result.Passed() being false, not through error.
func RunScenario(ctx context.Context, sc Scenario, spawner Spawner, opts ...Option) (Result, error) {
	var o = defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var runID = uuid.New().String()[0:8]
	var logger = o.logger.With("run_id", runID, "scenario_n", sc.N)

	var listener, err = net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(sc.OrchPort)))
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: failed to bind report listener: %w", err)
	}
	defer listener.Close()

	var scenarioCtx, cancel = context.WithTimeout(ctx, o.scenarioDeadline)
	defer cancel()

	var reportsCh = make(chan Report, sc.N)
	go acceptReports(scenarioCtx, listener, reportsCh)

	var handles, expected, spawnErr = spawnAll(ctx, sc, spawner)
	if spawnErr != nil {
		logger.Error("failed to launch scenario", "error", spawnErr)
		return Result{Scenario: sc, RunID: runID, ExpectedUIDs: expected}, nil
	}

	var reports = collectReports(scenarioCtx, reportsCh, sc.N)
	var allExited = waitForExit(ctx, handles, o.childExitTimeout)

	var result = validate(sc, runID, expected, reports, allExited)
	if !result.Passed() {
		logger.Warn("scenario failed",
			"got_all_reports", result.GotAllReports,
			"all_exited", result.AllExited,
			"same_winner", result.SameWinner,
			"winner_is_expected", result.WinnerIsExpected)
	}
	return result, nil
}

// spawnAll launches sc.N nodes in order 0..N-1. On any failure it kills the
// nodes already started and returns the error.
func spawnAll(ctx context.Context, sc Scenario, spawner Spawner) ([]Handle, []int64, error) {
	var (
		handles  = make([]Handle, 0, sc.N)
		expected = make([]int64, 0, sc.N)
	)

	for i := 0; i < sc.N; i++ {
		var h, err = spawner.Spawn(ctx, sc.N, i, sc.BasePort, sc.OrchPort)
		if err != nil {
			for _, started := range handles {
				started.Kill()
			}
			return handles, expected, fmt.Errorf("failed to spawn node %d: %w", i, err)
		}
		handles = append(handles, h)
		expected = append(expected, h.UID())
	}

	return handles, expected, nil
}

// acceptReports accepts connections on l until ctx is done (which also
// closes l), reading exactly one line per connection and forwarding
// well-formed REPORT messages to out.
func acceptReports(ctx context.Context, l net.Listener, out chan<- Report) {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		var conn, err = l.Accept()
		if err != nil {
			return
		}
		go func() {
			defer conn.Close()
			var scanner = bufio.NewScanner(conn)
			if !scanner.Scan() {
				return
			}
			var m wire.Message
			if err := json.Unmarshal(scanner.Bytes(), &m); err != nil || !m.IsReportComplete() {
				return
			}
			select {
			case out <- Report{
				UID:      m.UID,
				Winner:   m.WinnerOrDefault(-1),
				Rounds:   m.RoundsOrZero(),
				Messages: m.MessagesOrZero(),
			}:
			case <-ctx.Done():
			}
		}()
	}
}

// collectReports drains in until n reports have arrived or ctx is done
// (scenario deadline elapsed).
func collectReports(ctx context.Context, in <-chan Report, n int) []Report {
	var reports = make([]Report, 0, n)
	for len(reports) < n {
		select {
		case r := <-in:
			reports = append(reports, r)
		case <-ctx.Done():
			return reports
		}
	}
	return reports
}

// waitForExit waits, concurrently, up to timeout per child for a normal
// exit, killing any survivor that does not exit on its own.
func waitForExit(ctx context.Context, handles []Handle, timeout time.Duration) bool {
	var (
		results = make([]bool, len(handles))
		wg      sync.WaitGroup
	)

	for i, h := range handles {
		wg.Add(1)
		go func(i int, h Handle) {
			defer wg.Done()
			var waitCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := h.Wait(waitCtx); err != nil {
				h.Kill()
				results[i] = false
				return
			}
			results[i] = true
		}(i, h)
	}
	wg.Wait()

	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

// validate cross-checks reports against expected, and aggregates totals.
func validate(sc Scenario, runID string, expected []int64, reports []Report, allExited bool) Result {
	var res = Result{
		Scenario:      sc,
		RunID:         runID,
		ExpectedUIDs:  expected,
		Reports:       reports,
		AllExited:     allExited,
		GotAllReports: len(reports) == sc.N,
	}

	var winner int64 = -1
	var sameWinner = len(reports) > 0
	if sameWinner {
		winner = reports[0].Winner
		for _, r := range reports[1:] {
			if r.Winner != winner {
				sameWinner = false
				break
			}
		}
	}
	res.SameWinner = sameWinner
	res.Winner = winner

	var maxExpected int64 = math.MinInt64
	for _, u := range expected {
		if u > maxExpected {
			maxExpected = u
		}
	}
	res.WinnerIsExpected = sameWinner && len(expected) > 0 && winner == maxExpected

	var (
		total       int64
		rounds      int
		foundWinner bool
	)
	for _, r := range reports {
		total += r.Messages
		if r.UID == winner {
			rounds = r.Rounds
			foundWinner = true
		}
		if !foundWinner && r.Rounds > rounds {
			rounds = r.Rounds
		}
	}
	res.TotalMessages = total
	res.Rounds = rounds

	return res
}
