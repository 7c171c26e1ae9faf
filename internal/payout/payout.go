// Package payout implements the pure payout computation for a single
// investment interaction. It never mutates anything; the environment
// transition applies the results.
package payout

import (
	"fmt"

	"InvestLab/internal/model"
)

// Payout is the outcome of one proposed interaction: how much of the
// injection the investment accepted, the reward discharged this step, and
// what the agent actually spent and got back.
type Payout struct {
	Accepted int // portion of the proposal absorbed by the investment
	Reward   int // reward discharged (0 off the discharge schedule)

	EnergeticSpent     int
	InstrumentalSpent  int
	EnergeticReturn    int
	InstrumentalReturn int
}

// Spent is the combined resource outlay.
func (p Payout) Spent() int { return p.EnergeticSpent + p.InstrumentalSpent }

// Compute evaluates a proposed injection against an investment at the given
// fill level and timestep.
//
// Conventions, held identical across V1/V2/V3:
//   - The accepted injection is clamped to the remaining headroom
//     (Capacity - level), never below zero. When clamping a V3 pair, the
//     instrumental component is reduced first.
//   - Reward discharges only when timestep % RewardPeriod == 0, and equals
//     RewardFn(level + accepted): the full accrued stock, which the caller
//     then resets.
//   - V3 minimum burden is all-or-nothing: a nonzero proposal whose
//     energetic component is below MinEnergeticBurden is rejected entirely
//     (Accepted == 0, nothing spent). The rejected interaction degrades to
//     a zero injection, so on a discharge step it still harvests the
//     already-accrued stock, exactly as a deliberate zero interaction would.
//
// A negative proposal fails with ErrInvalidInput.
func Compute(inv *model.Investment, variant model.Variant, proposal model.Action, level, timestep int) (Payout, error) {
	if proposal.Energetic < 0 || proposal.Instrumental < 0 {
		return Payout{}, fmt.Errorf("%w: negative proposed injection (%d, %d)",
			model.ErrInvalidInput, proposal.Energetic, proposal.Instrumental)
	}
	if level < 0 || level > inv.Capacity {
		return Payout{}, fmt.Errorf("%w: fill level %d outside [0, %d]",
			model.ErrInvalidInput, level, inv.Capacity)
	}

	headroom := inv.Capacity - level
	accepted := proposal.Total()
	if accepted > headroom {
		accepted = headroom
	}

	spentE := proposal.Energetic
	spentI := proposal.Instrumental
	if clip := proposal.Total() - accepted; clip > 0 {
		// Instrumental first, then energetic.
		if clip <= spentI {
			spentI -= clip
		} else {
			spentE -= clip - spentI
			spentI = 0
		}
	}

	if variant.Disaggregated() && accepted > 0 && spentE < inv.MinEnergeticBurden {
		accepted, spentE, spentI = 0, 0, 0
	}

	p := Payout{
		Accepted:          accepted,
		EnergeticSpent:    spentE,
		InstrumentalSpent: spentI,
	}

	if inv.DischargesAt(timestep) {
		p.Reward = inv.RewardFn(level + accepted)
	}

	if variant.Disaggregated() {
		p.EnergeticReturn = inv.EnergeticReturnFn(spentE)
		p.InstrumentalReturn = inv.InstrumentalReturnFn(spentI)
	} else {
		p.EnergeticReturn = inv.ReturnFn(spentE)
	}
	return p, nil
}
