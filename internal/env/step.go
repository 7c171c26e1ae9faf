package env

import (
	"fmt"

	"InvestLab/internal/model"
	"InvestLab/internal/payout"
)

// Result is the outcome of one transition: fresh snapshots plus the reward
// discharged during the step.
type Result struct {
	State  model.AgentState
	Caps   CapVector
	Payout payout.Payout
}

// Preview computes the payout an action would produce from the given
// snapshot, without advancing anything. Policies use this for scoring.
func (e *Environment) Preview(st model.AgentState, caps CapVector, act model.Action) (payout.Payout, error) {
	if act.IsNoOp() {
		return payout.Payout{}, nil
	}
	if act.Investment < 0 || act.Investment >= len(e.Investments) {
		return payout.Payout{}, fmt.Errorf("%w: investment index %d out of range", model.ErrInfeasibleAction, act.Investment)
	}
	if act.Energetic > st.Energetic {
		return payout.Payout{}, fmt.Errorf("%w: energetic injection %d exceeds holdings %d",
			model.ErrInfeasibleAction, act.Energetic, st.Energetic)
	}
	if act.Instrumental > max(0, st.Instrumental) {
		return payout.Payout{}, fmt.Errorf("%w: instrumental injection %d exceeds holdings %d",
			model.ErrInfeasibleAction, act.Instrumental, st.Instrumental)
	}
	if !e.Variant.Disaggregated() && act.Instrumental != 0 {
		return payout.Payout{}, fmt.Errorf("%w: instrumental injection requires v3", model.ErrInfeasibleAction)
	}
	return payout.Compute(e.Investments[act.Investment], e.Variant, act, caps[act.Investment], st.Timestep)
}

// Step applies one action to the world and returns the next snapshots.
//
// Order of operations: payout for the chosen investment; fill-level update
// (reset to zero on a discharge step, injection added otherwise); capacity
// recovery for every non-chosen investment; agent settle (spend, return,
// then depletion). A resulting energetic level at or below zero marks the
// state terminal; termination is data, never an error.
func (e *Environment) Step(st model.AgentState, caps CapVector, act model.Action) (Result, error) {
	if st.Terminal {
		return Result{State: st, Caps: caps.Clone()}, nil
	}

	p, err := e.Preview(st, caps, act)
	if err != nil {
		return Result{}, err
	}

	next := caps.Clone()
	for i, inv := range e.Investments {
		if i == act.Investment {
			if inv.DischargesAt(st.Timestep) {
				next[i] = 0 // discharge drains everything accrued
			} else {
				next[i] += p.Accepted
			}
			continue
		}
		next[i] -= inv.RecoveryRate
		if next[i] < 0 {
			next[i] = 0
		}
	}

	ns := model.AgentState{
		Timestep:     st.Timestep + 1,
		Energetic:    st.Energetic - p.EnergeticSpent + p.EnergeticReturn - e.EnergeticDepletionRate,
		Instrumental: st.Instrumental - p.InstrumentalSpent + p.InstrumentalReturn - e.InstrumentalDepletionRate,
	}
	if ns.Energetic <= 0 {
		ns.Terminal = true
	}
	return Result{State: ns, Caps: next, Payout: p}, nil
}

// Actions enumerates every feasible action from the given snapshot, in the
// solver's canonical tie-break order: investments by ascending index,
// injections ascending within each, the no-op last. V3 enumeration honours
// the minimum-burden rule; under-burden pairs are not emitted.
func (e *Environment) Actions(st model.AgentState, caps CapVector) []model.Action {
	var out []model.Action
	if st.Terminal {
		return []model.Action{model.NoOp()}
	}
	for i, inv := range e.Investments {
		headroom := inv.Capacity - caps[i]
		if e.Variant.Disaggregated() {
			out = append(out, model.Action{Investment: i}) // zero interaction still discharges accrual
			maxE := min(st.Energetic, headroom)
			for eAmt := inv.MinEnergeticBurden; eAmt <= maxE; eAmt++ {
				maxI := min(max(0, st.Instrumental), headroom-eAmt)
				for iAmt := 0; iAmt <= maxI; iAmt++ {
					if eAmt+iAmt == 0 {
						continue // the zero interaction is already emitted
					}
					out = append(out, model.Action{Investment: i, Energetic: eAmt, Instrumental: iAmt})
				}
			}
			continue
		}
		maxJ := min(st.Energetic, headroom)
		for j := 0; j <= maxJ; j++ {
			out = append(out, model.Invest(i, j))
		}
	}
	return append(out, model.NoOp())
}
