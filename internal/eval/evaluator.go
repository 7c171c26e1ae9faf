// Package eval rolls a policy forward over a horizon and reports the
// cumulative discounted reward along with the trajectory it took.
package eval

import (
	"errors"
	"fmt"

	"InvestLab/internal/env"
	"InvestLab/internal/model"
	"InvestLab/internal/policy"
)

// Step is one trajectory entry: the snapshot the policy saw, what it did,
// and what it earned.
type Step struct {
	State      model.AgentState
	Caps       env.CapVector
	Action     model.Action
	Reward     int
	Discounted float64
}

// Rollout is a lazy, finite, restartable trajectory stream. Each Next call
// advances one timestep; Reset rewinds to the initial snapshot. The
// environment template is read-only, so independent rollouts may run in
// parallel as long as each has its own Rollout.
type Rollout struct {
	env     *env.Environment
	pol     policy.Policy
	initial model.AgentState
	horizon int

	st   model.AgentState
	caps env.CapVector
	done bool
}

// NewRollout prepares a rollout without running it.
func NewRollout(p policy.Policy, e *env.Environment, initial model.AgentState, horizon int) (*Rollout, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("%w: negative horizon %d", model.ErrInvalidInput, horizon)
	}
	r := &Rollout{env: e, pol: p, initial: initial, horizon: horizon}
	r.Reset()
	return r, nil
}

// Reset rewinds the rollout to the initial snapshot.
func (r *Rollout) Reset() {
	r.st = r.initial
	if !r.st.Alive() {
		r.st.Terminal = true
	}
	r.caps = r.env.InitialCaps()
	r.done = false
}

// Next advances one timestep. It returns false once the horizon is reached
// or the agent has hit the terminal depletion state: remaining steps earn
// zero by definition, so the stream simply ends.
//
// A policy decision that turns out infeasible is demoted to the no-op
// rather than failing the trajectory; this is the single convention for
// infeasible actions on the evaluation path.
func (r *Rollout) Next() (Step, bool, error) {
	if r.done || r.st.Timestep >= r.horizon || r.st.Terminal {
		r.done = true
		return Step{}, false, nil
	}

	act, err := r.pol.Decide(r.st, r.caps, r.env)
	if err != nil {
		return Step{}, false, fmt.Errorf("policy %s: %w", r.pol.Name(), err)
	}

	res, err := r.env.Step(r.st, r.caps, act)
	if errors.Is(err, model.ErrInfeasibleAction) {
		act = model.NoOp()
		res, err = r.env.Step(r.st, r.caps, act)
	}
	if err != nil {
		return Step{}, false, fmt.Errorf("step %d: %w", r.st.Timestep, err)
	}

	step := Step{
		State:      r.st,
		Caps:       r.caps.Clone(),
		Action:     act,
		Reward:     res.Payout.Reward,
		Discounted: r.env.Discount(r.st.Timestep) * float64(res.Payout.Reward),
	}
	r.st, r.caps = res.State, res.Caps
	return step, true, nil
}

// Terminated reports whether the agent has hit the depletion state. It is
// true even when depletion lands on the final step of the horizon, where
// the trajectory length alone cannot tell survival from death.
func (r *Rollout) Terminated() bool { return r.st.Terminal }

// Evaluate runs the policy to completion and returns the cumulative
// discounted reward with the full trajectory.
func Evaluate(p policy.Policy, e *env.Environment, initial model.AgentState, horizon int) (float64, []Step, error) {
	r, err := NewRollout(p, e, initial, horizon)
	if err != nil {
		return 0, nil, err
	}
	var (
		total float64
		steps []Step
	)
	for {
		step, ok, err := r.Next()
		if err != nil {
			return 0, nil, err
		}
		if !ok {
			break
		}
		total += step.Discounted
		steps = append(steps, step)
	}
	return total, steps, nil
}
