package lab

import (
	"encoding/json"
	"os"
	"time"
)

// State tracks benchmark bookkeeping across sweeps.
type State struct {
	SweepsCompleted int                `json:"sweeps_completed"`
	RunsCompleted   int                `json:"runs_completed"`
	BestGap         map[string]float64 `json:"best_gap"` // policy -> smallest gap seen
	LastSweepAt     time.Time          `json:"last_sweep_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// LoadState reads the lab state from a JSON file. Returns a zero state if
// the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{BestGap: make(map[string]float64)}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.BestGap == nil {
		state.BestGap = make(map[string]float64)
	}
	return &state, nil
}

// SaveState writes the lab state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
