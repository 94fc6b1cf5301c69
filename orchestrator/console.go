package orchestrator

import (
	"fmt"
	"io"
)

// PrintResult renders one scenario's outcome in the console line format.
func PrintResult(w io.Writer, r Result) {
	fmt.Fprintf(w, "N=%d\n", r.Scenario.N)
	fmt.Fprintf(w, "UIDs=%v\n", r.ExpectedUIDs)
	fmt.Fprintf(w, "WinnerUID=%d\n", r.Winner)
	fmt.Fprintf(w, "Rounds=%d\n", r.Rounds)
	fmt.Fprintf(w, "TotalMessages=%d\n", r.TotalMessages)
	fmt.Fprintf(w, "SelfCheck=%s\n", verdict(r.Passed()))
}

// PrintOverall renders the sweep-level final line.
func PrintOverall(w io.Writer, passed bool) {
	fmt.Fprintf(w, "OverallSelfCheck=%s\n", verdict(passed))
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
