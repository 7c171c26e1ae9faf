// Package solver implements the exact finite-horizon dynamic program over
// (timestep, agent holdings, capacity vector). It is intentionally
// exponential in the number of investments and resource magnitude: it
// exists for small scenarios and as a correctness oracle for the
// heuristics, and admits no approximation.
package solver

import (
	"fmt"
	"sync"

	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// Solver runs backward induction for one environment and horizon. The
// environment definition is read-only; all per-state data lives in the
// memo cache.
type Solver struct {
	Env     *env.Environment
	Horizon int
	Workers int // parallel fan-out width at the root; <= 1 means sequential

	cache *memo
}

// New validates and builds a solver.
func New(e *env.Environment, horizon, workers int) (*Solver, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("%w: negative horizon %d", model.ErrInvalidInput, horizon)
	}
	if workers < 1 {
		workers = 1
	}
	return &Solver{Env: e, Horizon: horizon, Workers: workers, cache: &memo{}}, nil
}

// Solve computes the optimal value from the initial state and the policy
// table realising it. Re-running on identical inputs yields an identical
// table and value: every tie resolves to the lowest investment index, then
// the smallest injection, with the no-op last in the candidate order.
func (s *Solver) Solve(initial model.AgentState) (*Table, float64, error) {
	if !initial.Alive() {
		initial.Terminal = true
	}
	caps := s.Env.InitialCaps()

	value := s.visitParallel(initial, caps)

	table := &Table{
		horizon: s.Horizon,
		value:   value,
		actions: make(map[stateKey]model.Action),
	}
	s.cache.m.Range(func(k, v any) bool {
		e := v.(*entry)
		table.actions[k.(stateKey)] = e.action
		return true
	})
	return table, value, nil
}

// States reports how many distinct states the solve visited.
func (s *Solver) States() int { return s.cache.size() }

// visitParallel evaluates the root state, fanning the first-level action
// branches out across workers. Deeper recursion is sequential per branch;
// branches share the insert-once cache, so overlapping subtrees are
// computed exactly once.
func (s *Solver) visitParallel(st model.AgentState, caps env.CapVector) float64 {
	if s.Workers <= 1 {
		v, _ := s.visit(st, caps)
		return v
	}

	k := stateKey{st.Timestep, st.Energetic, st.Instrumental, caps.Key()}
	v, _ := s.cache.lookup(k, func() (float64, model.Action) {
		if st.Terminal || st.Timestep >= s.Horizon {
			return 0, model.NoOp()
		}
		acts := s.Env.Actions(st, caps)
		vals := make([]float64, len(acts))
		errs := make([]error, len(acts))

		sem := make(chan struct{}, s.Workers)
		var wg sync.WaitGroup
		for i, act := range acts {
			wg.Add(1)
			go func(i int, act model.Action) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				vals[i], errs[i] = s.branch(st, caps, act)
			}(i, act)
		}
		wg.Wait()

		// Deterministic argmax over the canonical order, regardless of
		// which goroutine finished first.
		bestV, bestA := 0.0, model.NoOp()
		first := true
		for i, act := range acts {
			if errs[i] != nil {
				continue
			}
			if first || vals[i] > bestV {
				bestV, bestA, first = vals[i], act, false
			}
		}
		return bestV, bestA
	})
	return v
}

// visit is the sequential recurrence:
//
//	V(t, res, cap) = max over feasible actions a of
//	    discount(t)*reward(a) + V(t+1, res', cap')
//
// Terminal states are absorbing with value 0.
func (s *Solver) visit(st model.AgentState, caps env.CapVector) (float64, model.Action) {
	if st.Terminal || st.Timestep >= s.Horizon {
		return 0, model.NoOp()
	}
	k := stateKey{st.Timestep, st.Energetic, st.Instrumental, caps.Key()}
	return s.cache.lookup(k, func() (float64, model.Action) {
		bestV, bestA := 0.0, model.NoOp()
		first := true
		for _, act := range s.Env.Actions(st, caps) {
			v, err := s.branch(st, caps, act)
			if err != nil {
				continue // enumeration should only yield feasible actions
			}
			if first || v > bestV {
				bestV, bestA, first = v, act, false
			}
		}
		return bestV, bestA
	})
}

// branch scores one action: immediate discounted reward plus the value of
// the successor state.
func (s *Solver) branch(st model.AgentState, caps env.CapVector, act model.Action) (float64, error) {
	res, err := s.Env.Step(st, caps, act)
	if err != nil {
		return 0, err
	}
	v := s.Env.Discount(st.Timestep) * float64(res.Payout.Reward)
	if !res.State.Terminal {
		fv, _ := s.visit(res.State, res.Caps)
		v += fv
	}
	return v, nil
}
