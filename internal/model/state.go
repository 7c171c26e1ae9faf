package model

// AgentState is the agent side of the world snapshot: the time index and the
// agent's resource holdings. For V1/V2 the single scalar resource lives in
// the Energetic slot and Instrumental stays 0. States are passed by value;
// transitions return fresh snapshots.
type AgentState struct {
	Timestep     int
	Energetic    int
	Instrumental int
	Terminal     bool
}

// Alive reports whether the agent survives in this state. Energetic
// resources at or below zero are fatal in every variant; instrumental debt
// is survivable.
func (s AgentState) Alive() bool {
	return !s.Terminal && s.Energetic > 0
}

// Action is one decision: fund a single investment with an injection, or do
// nothing. Investment is an index into the environment's ordered investment
// list; NoInvestment marks the no-op. Scalar variants carry the injection in
// the Energetic slot.
type Action struct {
	Investment   int
	Energetic    int
	Instrumental int
}

// NoInvestment is the Action.Investment value for the zero-injection no-op.
const NoInvestment = -1

// NoOp returns the do-nothing action.
func NoOp() Action {
	return Action{Investment: NoInvestment}
}

// IsNoOp reports whether the action funds no investment.
func (a Action) IsNoOp() bool { return a.Investment == NoInvestment }

// Total is the combined proposed injection.
func (a Action) Total() int { return a.Energetic + a.Instrumental }

// Invest builds a scalar-variant action funding investment i with amount n.
func Invest(i, n int) Action {
	return Action{Investment: i, Energetic: n}
}
