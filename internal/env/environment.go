// Package env owns the scenario definition (ordered investments plus
// environmental rates) and the single-step state transition.
package env

import (
	"fmt"
	"strconv"
	"strings"

	"InvestLab/internal/model"
)

// Environment is an ordered collection of investments plus the global
// depletion rates. The definition is read-only after construction; all
// mutable state (fill levels, agent holdings) travels in value-type
// snapshots so runs and solver branches never share mutable data.
type Environment struct {
	Variant     model.Variant
	Investments []*model.Investment

	EnergeticDepletionRate    int // V2/V3: agent energetic drain per timestep
	InstrumentalDepletionRate int // V3: agent instrumental drain per timestep
}

// New validates and builds an environment. Investment order is a tie-break
// convention only.
func New(variant model.Variant, investments []*model.Investment, energeticDepletion, instrumentalDepletion int) (*Environment, error) {
	if len(investments) == 0 {
		return nil, fmt.Errorf("%w: environment needs at least one investment", model.ErrInvalidInput)
	}
	if energeticDepletion < 0 || instrumentalDepletion < 0 {
		return nil, fmt.Errorf("%w: negative depletion rate (%d, %d)",
			model.ErrInvalidInput, energeticDepletion, instrumentalDepletion)
	}
	if variant == model.V1 && energeticDepletion != 0 {
		return nil, fmt.Errorf("%w: v1 does not model depletion", model.ErrInvalidInput)
	}
	if !variant.Disaggregated() && instrumentalDepletion != 0 {
		return nil, fmt.Errorf("%w: instrumental depletion requires v3", model.ErrInvalidInput)
	}
	for _, inv := range investments {
		if variant.Disaggregated() && (inv.EnergeticReturnFn == nil || inv.InstrumentalReturnFn == nil) {
			return nil, fmt.Errorf("%w: investment %q lacks disaggregated return curves", model.ErrInvalidInput, inv.Name)
		}
		if !variant.Disaggregated() && inv.ReturnFn == nil {
			return nil, fmt.Errorf("%w: investment %q lacks a scalar return curve", model.ErrInvalidInput, inv.Name)
		}
	}
	return &Environment{
		Variant:                   variant,
		Investments:               investments,
		EnergeticDepletionRate:    energeticDepletion,
		InstrumentalDepletionRate: instrumentalDepletion,
	}, nil
}

// Gamma is the per-step discount factor, derived from the energetic
// depletion rate: faster environmental depletion means steeper discounting.
// Zero depletion (V1) yields gamma = 1.
func (e *Environment) Gamma() float64 {
	return 1.0 / (1.0 + float64(e.EnergeticDepletionRate))
}

// Discount is the weight applied to reward earned at the given timestep.
func (e *Environment) Discount(timestep int) float64 {
	g := e.Gamma()
	d := 1.0
	for i := 0; i < timestep; i++ {
		d *= g
	}
	return d
}

// CapVector is a value-type snapshot of every investment's fill level,
// indexed in environment order.
type CapVector []int

// InitialCaps returns the start-of-scenario capacity vector: every
// investment empty.
func (e *Environment) InitialCaps() CapVector {
	return make(CapVector, len(e.Investments))
}

// Clone returns an independent copy.
func (c CapVector) Clone() CapVector {
	out := make(CapVector, len(c))
	copy(out, c)
	return out
}

// Key encodes the vector for use in memoization keys.
func (c CapVector) Key() string {
	var b strings.Builder
	for i, v := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
