package policy

import (
	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// HorizonAware is the discount-aware heuristic for V2/V3. It scores each
// action by its discounted immediate reward plus the resource profit
// weighted by the fraction of the horizon still remaining: early in a run
// retained resources are worth nearly a full reward unit each, at the last
// step they are worth nothing.
type HorizonAware struct {
	Horizon int
}

func (HorizonAware) Name() string { return "horizon-aware" }

func (h HorizonAware) Decide(st model.AgentState, caps env.CapVector, e *env.Environment) (model.Action, error) {
	best := model.NoOp()
	bestScore := 0.0
	remaining := h.Horizon - st.Timestep - 1
	if remaining < 0 {
		remaining = 0
	}
	weight := 0.0
	if h.Horizon > 0 {
		weight = float64(remaining) / float64(h.Horizon)
	}
	for _, act := range e.Actions(st, caps) {
		if act.IsNoOp() {
			continue
		}
		p, err := e.Preview(st, caps, act)
		if err != nil {
			return model.Action{}, err
		}
		profit := p.EnergeticReturn + p.InstrumentalReturn - p.Spent()
		score := e.Discount(st.Timestep)*float64(p.Reward) + weight*float64(profit)
		if score > bestScore {
			best, bestScore = act, score
		}
	}
	return best, nil
}
