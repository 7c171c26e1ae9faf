// Package scenario holds the declarative scenario definitions and the lab
// configuration file. All numeric scenario fields are integers; fractional
// YAML values are rejected at decode time, never silently truncated.
package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"InvestLab/internal/env"
	"InvestLab/internal/model"
)

// intsOnly walks a decoded node tree and rejects any fractional scalar.
// yaml.v3 would otherwise truncate a float into an int field without error.
func intsOnly(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!float" {
		return fmt.Errorf("%w: non-integer value %q (line %d)", model.ErrInvalidInput, n.Value, n.Line)
	}
	for _, c := range n.Content {
		if err := intsOnly(c); err != nil {
			return err
		}
	}
	return nil
}

// InvestmentSpec declares one investment.
type InvestmentSpec struct {
	Name         string    `yaml:"name"`
	Capacity     int       `yaml:"capacity"`
	RecoveryRate int       `yaml:"recovery_rate"`
	RewardPeriod int       `yaml:"reward_period"`
	Reward       CurveSpec `yaml:"reward"`

	// Scalar variants (v1/v2).
	Return CurveSpec `yaml:"return"`

	// Disaggregated variant (v3).
	EnergeticReturn    CurveSpec `yaml:"energetic_return"`
	InstrumentalReturn CurveSpec `yaml:"instrumental_return"`
	MinEnergeticBurden int       `yaml:"min_energetic_burden"`
}

// UnmarshalYAML decodes the spec, rejecting fractional numeric values.
func (is *InvestmentSpec) UnmarshalYAML(value *yaml.Node) error {
	if err := intsOnly(value); err != nil {
		return err
	}
	type plain InvestmentSpec
	return value.Decode((*plain)(is))
}

// Scenario declares one complete world: variant, horizon, agent start, and
// the investment set.
type Scenario struct {
	Name                string           `yaml:"name"`
	Variant             string           `yaml:"variant"`
	Horizon             int              `yaml:"horizon"`
	InitialEnergetic    int              `yaml:"initial_energetic"`
	InitialInstrumental int              `yaml:"initial_instrumental"`
	EnergeticDepletion  int              `yaml:"energetic_depletion_rate"`
	InstrumentalDepl    int              `yaml:"instrumental_depletion_rate"`
	Investments         []InvestmentSpec `yaml:"investments"`
}

// UnmarshalYAML decodes the scenario, rejecting fractional numeric values.
func (sc *Scenario) UnmarshalYAML(value *yaml.Node) error {
	if err := intsOnly(value); err != nil {
		return err
	}
	type plain Scenario
	return value.Decode((*plain)(sc))
}

// Build compiles the declaration into a live environment and initial agent
// state. All validation errors surface here, before anything runs.
func (sc *Scenario) Build() (*env.Environment, model.AgentState, error) {
	variant, err := model.ParseVariant(sc.Variant)
	if err != nil {
		return nil, model.AgentState{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if sc.Horizon < 1 {
		return nil, model.AgentState{}, fmt.Errorf("scenario %q: %w: horizon %d must be >= 1",
			sc.Name, model.ErrInvalidInput, sc.Horizon)
	}
	if sc.InitialEnergetic < 1 {
		return nil, model.AgentState{}, fmt.Errorf("scenario %q: %w: initial resources %d must be >= 1",
			sc.Name, model.ErrInvalidInput, sc.InitialEnergetic)
	}

	invs := make([]*model.Investment, 0, len(sc.Investments))
	for _, is := range sc.Investments {
		inv, err := is.build(variant)
		if err != nil {
			return nil, model.AgentState{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		invs = append(invs, inv)
	}

	e, err := env.New(variant, invs, sc.EnergeticDepletion, sc.InstrumentalDepl)
	if err != nil {
		return nil, model.AgentState{}, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	st := model.AgentState{
		Energetic:    sc.InitialEnergetic,
		Instrumental: sc.InitialInstrumental,
	}
	return e, st, nil
}

func (is *InvestmentSpec) build(variant model.Variant) (*model.Investment, error) {
	reward, err := is.Reward.Fn()
	if err != nil {
		return nil, fmt.Errorf("investment %q reward: %w", is.Name, err)
	}

	if variant.Disaggregated() {
		eRet, err := is.EnergeticReturn.Fn()
		if err != nil {
			return nil, fmt.Errorf("investment %q energetic_return: %w", is.Name, err)
		}
		if !is.EnergeticReturn.NonNegative() {
			return nil, fmt.Errorf("%w: investment %q: energetic return curve may go negative",
				model.ErrInvalidInput, is.Name)
		}
		iRet, err := is.InstrumentalReturn.Fn()
		if err != nil {
			return nil, fmt.Errorf("investment %q instrumental_return: %w", is.Name, err)
		}
		return model.NewDisaggregated(is.Name, is.Capacity, is.RecoveryRate, is.RewardPeriod,
			reward, eRet, iRet, is.MinEnergeticBurden)
	}

	ret, err := is.Return.Fn()
	if err != nil {
		return nil, fmt.Errorf("investment %q return: %w", is.Name, err)
	}
	if !is.Return.NonNegative() {
		return nil, fmt.Errorf("%w: investment %q: return curve may go negative",
			model.ErrInvalidInput, is.Name)
	}
	return model.New(is.Name, is.Capacity, is.RecoveryRate, is.RewardPeriod, reward, ret)
}
