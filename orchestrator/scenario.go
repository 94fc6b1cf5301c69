package orchestrator

// Scenario describes one election run: N nodes, the base port their
// listeners occupy (basePort+index), and the orchestrator's own report
// port.
type Scenario struct {
	N        int
	BasePort int
	OrchPort int
}

// DefaultScenarios is the sweep the orchestrator CLI runs when invoked with
// --n 0.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{N: 10, BasePort: 51000, OrchPort: 41000},
		{N: 20, BasePort: 52000, OrchPort: 42000},
		{N: 50, BasePort: 53000, OrchPort: 43000},
		{N: 100, BasePort: 54000, OrchPort: 44000},
		{N: 200, BasePort: 55000, OrchPort: 45000},
	}
}

// Report is a node's parsed terminal message.
type Report struct {
	UID      int64
	Winner   int64
	Rounds   int
	Messages int64
}

// Result is the outcome of one scenario run, ready for console rendering
// and cross-scenario aggregation.
type Result struct {
	Scenario Scenario
	RunID    string

	ExpectedUIDs []int64
	Reports      []Report

	GotAllReports    bool
	AllExited        bool
	SameWinner       bool
	WinnerIsExpected bool

	Winner        int64
	Rounds        int
	TotalMessages int64
}

// Passed reports the scenario's overall verdict: the AND of every
// validation check.
func (r Result) Passed() bool {
	return r.GotAllReports && r.AllExited && r.SameWinner && r.WinnerIsExpected
}
