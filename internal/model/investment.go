package model

import "fmt"

// IntFn maps an integer resource quantity to an integer payout quantity.
// All curves in the system are integer-valued; fractional payouts are not
// representable by construction.
type IntFn func(int) int

// Variant selects the model family the engine is running.
type Variant string

const (
	// V1 is the baseline capacity/reward model: a single scalar resource,
	// no depletion, no discounting.
	V1 Variant = "v1"
	// V2 adds environmental depletion of the agent's resources and the
	// time-discounting derived from it.
	V2 Variant = "v2"
	// V3 disaggregates the resource into an energetic component (survival)
	// and an instrumental component (credit; may go into debt).
	V3 Variant = "v3"
)

// ParseVariant converts a string tag to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case V1, V2, V3:
		return Variant(s), nil
	}
	return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidInput, s)
}

// Disaggregated reports whether the variant tracks the resource pair.
func (v Variant) Disaggregated() bool { return v == V3 }

// Investment is a resource-accepting entity with bounded capacity, gradual
// capacity recovery, and periodic reward discharge. All parameters are
// immutable after construction; the mutable fill level lives in the
// environment's capacity vector, never here.
type Investment struct {
	Name string

	Capacity     int // max resources the investment can hold at once
	RecoveryRate int // fill level drained back per idle timestep
	RewardPeriod int // reward discharges only when timestep % RewardPeriod == 0

	RewardFn IntFn // accrued level -> reward discharged
	ReturnFn IntFn // resources spent -> resources returned (V1/V2, must be >= 0)

	// V3 only: per-component return curves and the energetic floor.
	EnergeticReturnFn    IntFn // energetic spend -> energetic return (must be >= 0)
	InstrumentalReturnFn IntFn // instrumental spend -> instrumental return (may be negative: debt)
	MinEnergeticBurden   int   // minimum energetic spend required per interaction
}

// New constructs a scalar-resource (V1/V2) investment, failing fast on any
// invalid parameter.
func New(name string, capacity, recovery, period int, reward, ret IntFn) (*Investment, error) {
	inv := &Investment{
		Name:         name,
		Capacity:     capacity,
		RecoveryRate: recovery,
		RewardPeriod: period,
		RewardFn:     reward,
		ReturnFn:     ret,
	}
	if err := inv.validate(); err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("%w: investment %q: resource return curve is required", ErrInvalidInput, name)
	}
	return inv, nil
}

// NewDisaggregated constructs a V3 investment with split energetic and
// instrumental return curves and a minimum energetic burden.
func NewDisaggregated(name string, capacity, recovery, period int, reward, energeticRet, instrumentalRet IntFn, burden int) (*Investment, error) {
	inv := &Investment{
		Name:                 name,
		Capacity:             capacity,
		RecoveryRate:         recovery,
		RewardPeriod:         period,
		RewardFn:             reward,
		EnergeticReturnFn:    energeticRet,
		InstrumentalReturnFn: instrumentalRet,
		MinEnergeticBurden:   burden,
	}
	if err := inv.validate(); err != nil {
		return nil, err
	}
	if energeticRet == nil || instrumentalRet == nil {
		return nil, fmt.Errorf("%w: investment %q: both return curves are required", ErrInvalidInput, name)
	}
	if burden < 0 {
		return nil, fmt.Errorf("%w: investment %q: negative energetic burden %d", ErrInvalidInput, name, burden)
	}
	return inv, nil
}

func (inv *Investment) validate() error {
	if inv.Capacity < 0 {
		return fmt.Errorf("%w: investment %q: negative capacity %d", ErrInvalidInput, inv.Name, inv.Capacity)
	}
	if inv.RecoveryRate < 0 {
		return fmt.Errorf("%w: investment %q: negative recovery rate %d", ErrInvalidInput, inv.Name, inv.RecoveryRate)
	}
	if inv.RewardPeriod < 1 {
		return fmt.Errorf("%w: investment %q: reward period %d must be >= 1", ErrInvalidInput, inv.Name, inv.RewardPeriod)
	}
	if inv.RewardFn == nil {
		return fmt.Errorf("%w: investment %q: reward curve is required", ErrInvalidInput, inv.Name)
	}
	return nil
}

// DischargesAt reports whether an interaction at the given timestep triggers
// a reward discharge. The cycle is anchored to the global clock, not to the
// investment's first use, so discharge timing is a pure function of the
// timestep.
func (inv *Investment) DischargesAt(timestep int) bool {
	return timestep%inv.RewardPeriod == 0
}
