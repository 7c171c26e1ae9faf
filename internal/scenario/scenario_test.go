package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"InvestLab/internal/model"
)

func TestCurveSpec_Kinds(t *testing.T) {
	tests := []struct {
		name string
		spec CurveSpec
		in   int
		want int
	}{
		{"constant", CurveSpec{Kind: "constant", Value: 7}, 100, 7},
		{"linear", CurveSpec{Kind: "linear", Slope: 2, Intercept: 1}, 4, 9},
		{"step below", CurveSpec{Kind: "step", Threshold: 5, Amount: 10}, 4, 0},
		{"step at", CurveSpec{Kind: "step", Threshold: 5, Amount: 10}, 5, 10},
		{"capped under", CurveSpec{Kind: "capped", Slope: 3, Cap: 10}, 2, 6},
		{"capped over", CurveSpec{Kind: "capped", Slope: 3, Cap: 10}, 5, 10},
	}
	for _, tt := range tests {
		fn, err := tt.spec.Fn()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := fn(tt.in); got != tt.want {
			t.Errorf("%s: f(%d) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestCurveSpec_UnknownKind(t *testing.T) {
	for _, kind := range []string{"", "parabola"} {
		spec := CurveSpec{Kind: kind}
		if _, err := spec.Fn(); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("kind %q: expected ErrInvalidInput, got %v", kind, err)
		}
	}
}

func TestInvestmentSpec_RejectsNonIntegerYAML(t *testing.T) {
	var spec InvestmentSpec
	err := yaml.Unmarshal([]byte("capacity: 2.5"), &spec)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("fractional capacity: expected ErrInvalidInput, got %v", err)
	}

	var sc Scenario
	err = yaml.Unmarshal([]byte("initial_energetic: 3.7"), &sc)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("fractional initial resources: expected ErrInvalidInput, got %v", err)
	}
	if sc.InitialEnergetic != 0 {
		t.Errorf("initial_energetic = %d, want untouched 0 after rejection", sc.InitialEnergetic)
	}

	// Nested fractional values are caught through the whole tree.
	raw := `
lab:
  workers: 2
scenarios:
  - name: frac
    variant: v1
    horizon: 2
    initial_energetic: 3
    investments:
      - name: a
        capacity: 5
        recovery_rate: 1.5
        reward_period: 1
        reward: {kind: linear, slope: 1}
        return: {kind: constant, value: 0}
`
	var cfg Config
	err = yaml.Unmarshal([]byte(raw), &cfg)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("fractional recovery_rate: expected ErrInvalidInput, got %v", err)
	}

	// Integer values still decode.
	if err := yaml.Unmarshal([]byte("capacity: 3"), &spec); err != nil {
		t.Fatalf("integer capacity: %v", err)
	}
	if spec.Capacity != 3 {
		t.Errorf("capacity = %d, want 3", spec.Capacity)
	}
}

func TestScenario_BuildValidation(t *testing.T) {
	valid := Scenario{
		Name:             "ok",
		Variant:          "v1",
		Horizon:          3,
		InitialEnergetic: 5,
		Investments: []InvestmentSpec{
			{
				Name:         "a",
				Capacity:     10,
				RecoveryRate: 1,
				RewardPeriod: 1,
				Reward:       CurveSpec{Kind: "linear", Slope: 1},
				Return:       CurveSpec{Kind: "constant", Value: 0},
			},
		},
	}
	if _, _, err := valid.Build(); err != nil {
		t.Fatalf("valid scenario failed to build: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"bad variant", func(s *Scenario) { s.Variant = "v9" }},
		{"zero horizon", func(s *Scenario) { s.Horizon = 0 }},
		{"dead start", func(s *Scenario) { s.InitialEnergetic = 0 }},
		{"negative capacity", func(s *Scenario) { s.Investments[0].Capacity = -1 }},
		{"zero period", func(s *Scenario) { s.Investments[0].RewardPeriod = 0 }},
		{"negative return curve", func(s *Scenario) {
			s.Investments[0].Return = CurveSpec{Kind: "linear", Slope: 1, Intercept: -5}
		}},
		{"depletion outside v2", func(s *Scenario) { s.EnergeticDepletion = 1 }},
	}
	for _, tt := range tests {
		sc := valid
		sc.Investments = []InvestmentSpec{valid.Investments[0]}
		tt.mutate(&sc)
		if _, _, err := sc.Build(); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
		}
	}
}

func TestDemoSuite_AllBuild(t *testing.T) {
	for _, sc := range DemoSuite() {
		if _, _, err := sc.Build(); err != nil {
			t.Errorf("%s: %v", sc.Name, err)
		}
	}
}

func TestConfig_DefaultsAndDemoFallback(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lab.Workers != 4 {
		t.Errorf("workers = %d, want default 4", cfg.Lab.Workers)
	}
	if cfg.Lab.SweepCron == "" {
		t.Error("expected a default sweep cron")
	}
	if len(cfg.Scenarios) == 0 {
		t.Error("expected demo suite fallback when no scenarios configured")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_LoadsScenarioFile(t *testing.T) {
	raw := `
lab:
  workers: 2
scenarios:
  - name: from-file
    variant: v1
    horizon: 2
    initial_energetic: 3
    investments:
      - name: a
        capacity: 5
        recovery_rate: 1
        reward_period: 1
        reward: {kind: linear, slope: 1}
        return: {kind: constant, value: 0}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lab.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Lab.Workers)
	}
	if len(cfg.Scenarios) != 1 || cfg.Scenarios[0].Name != "from-file" {
		t.Fatalf("scenarios = %+v, want the one from the file", cfg.Scenarios)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfig_MalformedWorkersEnvKeepsDefault(t *testing.T) {
	t.Setenv("SOLVER_WORKERS", "plenty")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lab.Workers != 4 {
		t.Errorf("workers = %d, want default 4 when the override is malformed", cfg.Lab.Workers)
	}
}

func TestConfig_ValidateRejectsDuplicates(t *testing.T) {
	cfg := &Config{}
	cfg.Lab.Workers = 1
	suite := DemoSuite()
	cfg.Scenarios = []Scenario{suite[0], suite[0]}
	if err := cfg.Validate(); err == nil {
		t.Error("expected duplicate scenario names to fail validation")
	}
}
