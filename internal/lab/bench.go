package lab

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"InvestLab/internal/eval"
	"InvestLab/internal/policy"
	"InvestLab/internal/recorder"
	"InvestLab/internal/report"
	"InvestLab/internal/scenario"
	"InvestLab/internal/solver"
)

// Bench runs the full heuristic-vs-optimal comparison for a scenario suite.
type Bench struct {
	Scenarios []scenario.Scenario
	Recorder  recorder.Recorder
	Manager   *Manager
	Workers   int
}

// NewBench wires a benchmark runner.
func NewBench(scenarios []scenario.Scenario, rec recorder.Recorder, mgr *Manager, workers int) *Bench {
	return &Bench{Scenarios: scenarios, Recorder: rec, Manager: mgr, Workers: workers}
}

// SweepResult summarises one full suite sweep.
type SweepResult struct {
	Runs int
	Gaps map[string]float64 // policy -> worst gap across scenarios
}

// RunSuite sweeps every scenario: solves the optimum, evaluates each
// heuristic, records runs and comparisons, and folds the gaps into the
// bookkeeping state.
func (b *Bench) RunSuite() (*SweepResult, error) {
	result := &SweepResult{Gaps: make(map[string]float64)}
	for i := range b.Scenarios {
		sc := &b.Scenarios[i]
		cmps, err := b.RunScenario(sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		for _, c := range cmps {
			result.Runs++
			if worst, seen := result.Gaps[c.Policy]; !seen || c.Gap > worst {
				result.Gaps[c.Policy] = c.Gap
			}
		}
	}
	if b.Manager != nil {
		b.Manager.RecordSweep(result.Runs, result.Gaps)
	}
	return result, nil
}

// RunScenario benchmarks one scenario and returns the comparison records.
func (b *Bench) RunScenario(sc *scenario.Scenario) ([]*recorder.ComparisonRecord, error) {
	e, initial, err := sc.Build()
	if err != nil {
		return nil, err
	}

	s, err := solver.New(e, sc.Horizon, b.Workers)
	if err != nil {
		return nil, err
	}
	table, optimal, err := s.Solve(initial)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	log.Printf("[INFO] %s: solved %d states, optimal value %.3f", sc.Name, s.States(), optimal)

	policies := []policy.Policy{
		table,
		policy.GreedyReward{},
		policy.GreedyEfficiency{},
		policy.HorizonAware{Horizon: sc.Horizon},
	}

	var cmps []*recorder.ComparisonRecord
	for _, pol := range policies {
		roll, err := eval.NewRollout(pol, e, initial, sc.Horizon)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", pol.Name(), err)
		}
		var (
			reward float64
			steps  []eval.Step
		)
		for {
			step, ok, err := roll.Next()
			if err != nil {
				return nil, fmt.Errorf("evaluate %s: %w", pol.Name(), err)
			}
			if !ok {
				break
			}
			reward += step.Discounted
			steps = append(steps, step)
		}

		run := &recorder.RunRecord{
			ID:               uuid.NewString(),
			Scenario:         sc.Name,
			Variant:          sc.Variant,
			Policy:           pol.Name(),
			Horizon:          sc.Horizon,
			CumulativeReward: reward,
			StepsSurvived:    len(steps),
			Terminal:         roll.Terminated(),
		}
		if err := b.Recorder.RecordRun(run); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		if err := b.Recorder.RecordSteps(flatten(run.ID, steps)); err != nil {
			log.Printf("[ERROR] record steps: %v", err)
		}
		log.Printf("[INFO] %s", report.FormatRun(run))

		if pol.Name() == "optimal" {
			continue
		}
		cmp := &recorder.ComparisonRecord{
			Scenario:     sc.Name,
			Variant:      sc.Variant,
			Horizon:      sc.Horizon,
			Policy:       pol.Name(),
			PolicyReward: reward,
			OptimalValue: optimal,
			Gap:          optimal - reward,
		}
		if err := b.Recorder.RecordComparison(cmp); err != nil {
			log.Printf("[ERROR] record comparison: %v", err)
		}
		cmps = append(cmps, cmp)
	}

	log.Printf("[INFO] comparison\n%s", report.FormatComparison(sc.Name, optimal, cmps))
	return cmps, nil
}

func flatten(runID string, steps []eval.Step) []recorder.StepRecord {
	out := make([]recorder.StepRecord, 0, len(steps))
	for _, s := range steps {
		out = append(out, recorder.StepRecord{
			RunID:             runID,
			Timestep:          s.State.Timestep,
			Investment:        s.Action.Investment,
			EnergeticSpent:    s.Action.Energetic,
			InstrumentalSpent: s.Action.Instrumental,
			Reward:            s.Reward,
			Discounted:        s.Discounted,
			Energetic:         s.State.Energetic,
			Instrumental:      s.State.Instrumental,
		})
	}
	return out
}
