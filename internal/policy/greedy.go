package policy

import (
	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// GreedyReward maximises this step's discharged reward, ignoring the cost.
// Ties resolve to the earliest action in canonical order (lowest investment
// index, smallest injection), so decisions are reproducible.
type GreedyReward struct{}

func (GreedyReward) Name() string { return "greedy-reward" }

func (GreedyReward) Decide(st model.AgentState, caps env.CapVector, e *env.Environment) (model.Action, error) {
	best := model.NoOp()
	bestReward := 0
	for _, act := range e.Actions(st, caps) {
		if act.IsNoOp() {
			continue
		}
		p, err := e.Preview(st, caps, act)
		if err != nil {
			return model.Action{}, err
		}
		if p.Reward > bestReward {
			best, bestReward = act, p.Reward
		}
	}
	return best, nil
}

// GreedyEfficiency maximises reward per resource spent. Ratios are compared
// by cross-multiplication to stay in integer arithmetic. Actions that spend
// nothing are skipped; with no positive-reward spend available it returns
// the no-op.
type GreedyEfficiency struct{}

func (GreedyEfficiency) Name() string { return "greedy-efficiency" }

func (GreedyEfficiency) Decide(st model.AgentState, caps env.CapVector, e *env.Environment) (model.Action, error) {
	best := model.NoOp()
	bestReward, bestSpent := 0, 0
	for _, act := range e.Actions(st, caps) {
		if act.IsNoOp() {
			continue
		}
		p, err := e.Preview(st, caps, act)
		if err != nil {
			return model.Action{}, err
		}
		if p.Reward <= 0 || p.Spent() <= 0 {
			continue
		}
		// p.Reward/p.Spent() > bestReward/bestSpent, without division.
		if bestSpent == 0 || p.Reward*bestSpent > bestReward*p.Spent() {
			best, bestReward, bestSpent = act, p.Reward, p.Spent()
		}
	}
	return best, nil
}
