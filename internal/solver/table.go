package solver

import (
	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// Table is the policy extracted from a solve: the argmax action for every
// visited state. It satisfies the policy.Policy interface, so the evaluator
// can roll it forward like any heuristic.
type Table struct {
	horizon int
	value   float64
	actions map[stateKey]model.Action
}

func (t *Table) Name() string { return "optimal" }

// Value is the optimal discounted value from the initial state.
func (t *Table) Value() float64 { return t.value }

// Horizon is the horizon the table was solved for.
func (t *Table) Horizon() int { return t.horizon }

// Len reports the number of states the table covers.
func (t *Table) Len() int { return len(t.actions) }

// Decide looks up the stored optimal action for the state. States outside
// the solved reachable set (which a faithful forward rollout never
// produces) fall back to the no-op.
func (t *Table) Decide(st model.AgentState, caps env.CapVector, _ *env.Environment) (model.Action, error) {
	k := stateKey{st.Timestep, st.Energetic, st.Instrumental, caps.Key()}
	if act, ok := t.actions[k]; ok {
		return act, nil
	}
	return model.NoOp(), nil
}
