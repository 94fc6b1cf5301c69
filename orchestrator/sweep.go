package orchestrator

import (
	"context"
	"fmt"
	"io"
)

// Sweep runs each scenario in order against spawner, printing its result as
// it finishes. It checks abort only between scenarios, never mid-run, so a
// scenario that has already started always finishes and reports. It returns
// the AND of every scenario's Result.Passed().
func Sweep(ctx context.Context, scenarios []Scenario, spawner Spawner, out io.Writer, abort <-chan struct{}, opts ...Option) bool {
	var overall = true

	for _, sc := range scenarios {
		select {
		case <-abort:
			fmt.Fprintf(out, "sweep stopped by operator before the %d-node scenario\n", sc.N)
			PrintOverall(out, overall)
			return overall
		default:
		}

		var result, err = RunScenario(ctx, sc, spawner, opts...)
		if err != nil {
			fmt.Fprintf(out, "scenario N=%d could not be launched: %v\n", sc.N, err)
			overall = false
			continue
		}

		PrintResult(out, result)
		if !result.Passed() {
			overall = false
		}
	}

	PrintOverall(out, overall)
	return overall
}
