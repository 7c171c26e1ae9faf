package env

import (
	"errors"
	"testing"

	"InvestLab/internal/model"
)

func identity(x int) int { return x }
func zero(int) int       { return 0 }

func twoInvestmentEnv(t *testing.T) *Environment {
	t.Helper()
	a, err := model.New("a", 10, 2, 1, identity, zero)
	if err != nil {
		t.Fatalf("investment a: %v", err)
	}
	b, err := model.New("b", 5, 1, 2, func(x int) int { return 2 * x }, zero)
	if err != nil {
		t.Fatalf("investment b: %v", err)
	}
	e, err := New(model.V1, []*model.Investment{a, b}, 0, 0)
	if err != nil {
		t.Fatalf("environment: %v", err)
	}
	return e
}

func TestStep_DischargeResetsChosenLevel(t *testing.T) {
	e := twoInvestmentEnv(t)
	st := model.AgentState{Timestep: 0, Energetic: 10}

	res, err := e.Step(st, CapVector{3, 0}, model.Invest(0, 4))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Payout.Reward != 7 {
		t.Errorf("reward = %d, want f(3+4)=7", res.Payout.Reward)
	}
	if res.Caps[0] != 0 {
		t.Errorf("chosen level = %d, want 0 after discharge", res.Caps[0])
	}
	if res.State.Energetic != 6 {
		t.Errorf("energetic = %d, want 10-4", res.State.Energetic)
	}
}

func TestStep_NonDischargeAccrues(t *testing.T) {
	e := twoInvestmentEnv(t)
	// Investment b has period 2; t=1 is off-schedule.
	st := model.AgentState{Timestep: 1, Energetic: 10}

	res, err := e.Step(st, CapVector{0, 1}, model.Action{Investment: 1, Energetic: 3})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Payout.Reward != 0 {
		t.Errorf("reward = %d, want 0 off the discharge schedule", res.Payout.Reward)
	}
	if res.Caps[1] != 4 {
		t.Errorf("level = %d, want 1+3", res.Caps[1])
	}
}

func TestStep_RecoveryOnNonChosen(t *testing.T) {
	e := twoInvestmentEnv(t)
	st := model.AgentState{Timestep: 0, Energetic: 10}

	res, err := e.Step(st, CapVector{5, 3}, model.NoOp())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Caps[0] != 3 {
		t.Errorf("a level = %d, want 5-2", res.Caps[0])
	}
	if res.Caps[1] != 2 {
		t.Errorf("b level = %d, want 3-1", res.Caps[1])
	}

	// Recovery floors at zero.
	res, err = e.Step(st, CapVector{1, 0}, model.NoOp())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Caps[0] != 0 || res.Caps[1] != 0 {
		t.Errorf("levels = %v, want floor at 0", res.Caps)
	}
}

func TestStep_DepletionDrivesTerminal(t *testing.T) {
	a, _ := model.New("a", 10, 2, 1, identity, zero)
	e, err := New(model.V2, []*model.Investment{a}, 2, 0)
	if err != nil {
		t.Fatalf("environment: %v", err)
	}

	st := model.AgentState{Timestep: 0, Energetic: 2}
	res, err := e.Step(st, e.InitialCaps(), model.NoOp())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.State.Energetic != 0 {
		t.Errorf("energetic = %d, want 0", res.State.Energetic)
	}
	if !res.State.Terminal {
		t.Error("expected terminal state at zero energetic resources")
	}

	// Terminal states are absorbing.
	res2, err := e.Step(res.State, res.Caps, model.Invest(0, 1))
	if err != nil {
		t.Fatalf("step from terminal: %v", err)
	}
	if res2.State != res.State {
		t.Errorf("terminal state advanced: %+v", res2.State)
	}
	if res2.Payout.Reward != 0 {
		t.Errorf("terminal reward = %d, want 0", res2.Payout.Reward)
	}
}

func TestStep_InfeasibleActions(t *testing.T) {
	e := twoInvestmentEnv(t)
	st := model.AgentState{Timestep: 0, Energetic: 3}
	caps := e.InitialCaps()

	tests := []struct {
		name string
		act  model.Action
	}{
		{"overspend", model.Invest(0, 4)},
		{"bad index", model.Invest(7, 1)},
		{"instrumental outside v3", model.Action{Investment: 0, Energetic: 1, Instrumental: 1}},
	}
	for _, tt := range tests {
		if _, err := e.Step(st, caps, tt.act); !errors.Is(err, model.ErrInfeasibleAction) {
			t.Errorf("%s: expected ErrInfeasibleAction, got %v", tt.name, err)
		}
	}
}

func TestStep_BalanceInvariant(t *testing.T) {
	a, _ := model.New("a", 10, 2, 1, identity, func(x int) int { return x / 2 })
	e, err := New(model.V2, []*model.Investment{a}, 1, 0)
	if err != nil {
		t.Fatalf("environment: %v", err)
	}

	st := model.AgentState{Timestep: 0, Energetic: 8}
	for j := 0; j <= 8; j++ {
		res, err := e.Step(st, e.InitialCaps(), model.Invest(0, j))
		if err != nil {
			t.Fatalf("step j=%d: %v", j, err)
		}
		// Balance never exceeds resources - spent + return.
		bound := st.Energetic - res.Payout.EnergeticSpent + res.Payout.EnergeticReturn
		if res.State.Energetic > bound {
			t.Errorf("j=%d: balance %d exceeds bound %d", j, res.State.Energetic, bound)
		}
	}
}

func TestActions_CanonicalOrderAndBounds(t *testing.T) {
	e := twoInvestmentEnv(t)
	st := model.AgentState{Timestep: 0, Energetic: 3}

	acts := e.Actions(st, CapVector{8, 0})
	// Investment 0 headroom 2, holdings 3: injections 0..2.
	// Investment 1 headroom 5, holdings 3: injections 0..3.
	// Then the no-op.
	want := []model.Action{
		model.Invest(0, 0), model.Invest(0, 1), model.Invest(0, 2),
		model.Invest(1, 0), model.Invest(1, 1), model.Invest(1, 2), model.Invest(1, 3),
		model.NoOp(),
	}
	if len(acts) != len(want) {
		t.Fatalf("got %d actions, want %d: %v", len(acts), len(want), acts)
	}
	for i := range want {
		if acts[i] != want[i] {
			t.Errorf("action %d = %+v, want %+v", i, acts[i], want[i])
		}
	}
}

func TestActions_V3HonoursBurden(t *testing.T) {
	inv, err := model.NewDisaggregated("w", 6, 2, 1, identity, identity, zero, 2)
	if err != nil {
		t.Fatalf("investment: %v", err)
	}
	e, err := New(model.V3, []*model.Investment{inv}, 1, 0)
	if err != nil {
		t.Fatalf("environment: %v", err)
	}

	st := model.AgentState{Timestep: 0, Energetic: 4, Instrumental: 2}
	for _, act := range e.Actions(st, e.InitialCaps()) {
		if act.IsNoOp() || act.Total() == 0 {
			continue
		}
		if act.Energetic < 2 {
			t.Errorf("enumerated under-burden action %+v", act)
		}
		if act.Total() > 6 {
			t.Errorf("enumerated over-capacity action %+v", act)
		}
	}
}

func TestCapVector_CloneIndependence(t *testing.T) {
	caps := CapVector{1, 2, 3}
	clone := caps.Clone()
	clone[0] = 9
	if caps[0] != 1 {
		t.Error("clone shares backing array with original")
	}
	if caps.Key() == clone.Key() {
		t.Error("distinct vectors share a key")
	}
}
