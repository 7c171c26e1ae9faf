package scenario

import (
	"fmt"

	"InvestLab/internal/model"
)

// CurveSpec is a declarative integer curve. Supported kinds:
//
//	constant: f(x) = value
//	linear:   f(x) = slope*x + intercept
//	step:     f(x) = amount if x >= threshold, else 0
//	capped:   f(x) = min(slope*x, cap)
//
// These are the integer analogues of the original function-class seeds
// (constant/linear/saturating); every curve is exact, no floating point.
type CurveSpec struct {
	Kind      string `yaml:"kind"`
	Value     int    `yaml:"value"`
	Slope     int    `yaml:"slope"`
	Intercept int    `yaml:"intercept"`
	Threshold int    `yaml:"threshold"`
	Amount    int    `yaml:"amount"`
	Cap       int    `yaml:"cap"`
}

// Fn compiles the spec into an integer function.
func (c *CurveSpec) Fn() (model.IntFn, error) {
	switch c.Kind {
	case "constant":
		v := c.Value
		return func(int) int { return v }, nil
	case "linear":
		slope, intercept := c.Slope, c.Intercept
		return func(x int) int { return slope*x + intercept }, nil
	case "step":
		threshold, amount := c.Threshold, c.Amount
		return func(x int) int {
			if x >= threshold {
				return amount
			}
			return 0
		}, nil
	case "capped":
		slope, capAt := c.Slope, c.Cap
		return func(x int) int {
			v := slope * x
			if v > capAt {
				return capAt
			}
			return v
		}, nil
	case "":
		return nil, fmt.Errorf("%w: curve kind is required", model.ErrInvalidInput)
	}
	return nil, fmt.Errorf("%w: unknown curve kind %q", model.ErrInvalidInput, c.Kind)
}

// NonNegative reports whether the curve is provably >= 0 for all x >= 0.
// Scalar resource-return curves must satisfy this (the agent never loses
// more than it spends); instrumental return curves are exempt.
func (c *CurveSpec) NonNegative() bool {
	switch c.Kind {
	case "constant":
		return c.Value >= 0
	case "linear":
		return c.Slope >= 0 && c.Intercept >= 0
	case "step":
		return c.Amount >= 0
	case "capped":
		return c.Slope >= 0 && c.Cap >= 0
	}
	return false
}
