package recorder

// RunRecord summarises one policy rollout on one scenario.
type RunRecord struct {
	ID               string // uuid
	Scenario         string
	Variant          string
	Policy           string
	Horizon          int
	CumulativeReward float64
	StepsSurvived    int
	Terminal         bool // agent hit depletion during the run
}

// StepRecord is one flattened trajectory entry.
type StepRecord struct {
	RunID             string
	Timestep          int
	Investment        int // -1 for the no-op
	EnergeticSpent    int
	InstrumentalSpent int
	Reward            int
	Discounted        float64
	Energetic         int // holdings before the step
	Instrumental      int
}

// ComparisonRecord is one heuristic-vs-optimal result.
type ComparisonRecord struct {
	Scenario     string
	Variant      string
	Horizon      int
	Policy       string
	PolicyReward float64
	OptimalValue float64
	Gap          float64 // OptimalValue - PolicyReward, >= 0 by the optimality bound
}

// Recorder persists benchmark results for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordSteps(steps []StepRecord) error
	RecordComparison(cmp *ComparisonRecord) error
	Close() error
}
