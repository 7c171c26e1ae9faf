package scenario

// DemoSuite returns the built-in deterministic benchmark scenarios, sized
// so the exact solver stays tractable. They double as fixtures in tests.
func DemoSuite() []Scenario {
	return []Scenario{
		{
			Name:             "v1-single-orchard",
			Variant:          "v1",
			Horizon:          3,
			InitialEnergetic: 5,
			Investments: []InvestmentSpec{
				{
					Name:         "orchard",
					Capacity:     10,
					RecoveryRate: 2,
					RewardPeriod: 1,
					Reward:       CurveSpec{Kind: "linear", Slope: 1},
					Return:       CurveSpec{Kind: "constant", Value: 0},
				},
			},
		},
		{
			Name:             "v1-two-ways",
			Variant:          "v1",
			Horizon:          4,
			InitialEnergetic: 6,
			Investments: []InvestmentSpec{
				{
					Name:         "quick",
					Capacity:     4,
					RecoveryRate: 1,
					RewardPeriod: 1,
					Reward:       CurveSpec{Kind: "linear", Slope: 2},
					Return:       CurveSpec{Kind: "constant", Value: 0},
				},
				{
					Name:         "renewing",
					Capacity:     6,
					RecoveryRate: 3,
					RewardPeriod: 2,
					Reward:       CurveSpec{Kind: "linear", Slope: 3},
					Return:       CurveSpec{Kind: "linear", Slope: 1},
				},
			},
		},
		{
			Name:               "v2-depleting-world",
			Variant:            "v2",
			Horizon:            5,
			InitialEnergetic:   10,
			EnergeticDepletion: 1,
			Investments: []InvestmentSpec{
				{
					Name:         "forage",
					Capacity:     5,
					RecoveryRate: 2,
					RewardPeriod: 1,
					Reward:       CurveSpec{Kind: "linear", Slope: 1},
					Return:       CurveSpec{Kind: "linear", Slope: 1},
				},
				{
					Name:         "stockpile",
					Capacity:     8,
					RecoveryRate: 1,
					RewardPeriod: 2,
					Reward:       CurveSpec{Kind: "capped", Slope: 2, Cap: 10},
					Return:       CurveSpec{Kind: "constant", Value: 0},
				},
			},
		},
		{
			Name:                "v3-burdened-trade",
			Variant:             "v3",
			Horizon:             4,
			InitialEnergetic:    8,
			InitialInstrumental: 4,
			EnergeticDepletion:  1,
			InstrumentalDepl:    0,
			Investments: []InvestmentSpec{
				{
					Name:               "workshop",
					Capacity:           6,
					RecoveryRate:       2,
					RewardPeriod:       1,
					Reward:             CurveSpec{Kind: "linear", Slope: 2},
					EnergeticReturn:    CurveSpec{Kind: "linear", Slope: 1},
					InstrumentalReturn: CurveSpec{Kind: "linear", Slope: 1, Intercept: -2}, // debt below 2 spent
					MinEnergeticBurden: 2,
				},
			},
		},
	}
}
