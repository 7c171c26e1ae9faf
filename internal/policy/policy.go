// Package policy defines the decision interface shared by heuristic rules
// and the optimal policy table, plus the heuristic implementations.
package policy

import (
	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// Policy picks one action from the current observable snapshot. Decisions
// are pure: no lookahead state is kept between calls. Every policy must
// degrade to the no-op when nothing feasible admits a positive injection.
type Policy interface {
	Name() string
	Decide(st model.AgentState, caps env.CapVector, e *env.Environment) (model.Action, error)
}
