package scenario

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Lab struct {
		StateFile string `yaml:"state_file"`
		SweepCron string `yaml:"sweep_cron"`
		Workers   int    `yaml:"workers"`
	} `yaml:"lab"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// UnmarshalYAML decodes the config, rejecting fractional numeric values.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if err := intsOnly(value); err != nil {
		return err
	}
	type plain Config
	return value.Decode((*plain)(c))
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; the demo suite
// fills in when no scenarios are configured.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LAB_STATE_FILE"); v != "" {
		cfg.Lab.StateFile = v
	}
	if v := os.Getenv("SWEEP_CRON"); v != "" {
		cfg.Lab.SweepCron = v
	}
	if v := os.Getenv("SOLVER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Lab.Workers = n
		} else {
			log.Printf("[WARN] SOLVER_WORKERS=%q is not an integer, keeping configured value", v)
		}
	}

	// Defaults
	if cfg.Lab.StateFile == "" {
		cfg.Lab.StateFile = "data/lab_state.json"
	}
	if cfg.Lab.SweepCron == "" {
		cfg.Lab.SweepCron = "0 0 2 * * *"
	}
	if cfg.Lab.Workers == 0 {
		cfg.Lab.Workers = 4
	}
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = DemoSuite()
	}

	return cfg, nil
}

// Validate checks that every configured scenario builds.
func (c *Config) Validate() error {
	if c.Lab.Workers < 1 {
		return fmt.Errorf("lab.workers must be positive, got %d", c.Lab.Workers)
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i := range c.Scenarios {
		sc := &c.Scenarios[i]
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %q: duplicate name", sc.Name)
		}
		seen[sc.Name] = true
		if _, _, err := sc.Build(); err != nil {
			return err
		}
	}
	return nil
}
