package lab

import (
	"log"
	"sync"
	"time"
)

// Manager guards the lab bookkeeping state with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current state.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := *m.state
	st.BestGap = make(map[string]float64, len(m.state.BestGap))
	for k, v := range m.state.BestGap {
		st.BestGap[k] = v
	}
	return st
}

// RecordSweep folds one sweep's per-policy gaps into the bookkeeping.
func (m *Manager) RecordSweep(runs int, gaps map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.SweepsCompleted++
	m.state.RunsCompleted += runs
	m.state.LastSweepAt = time.Now()
	for pol, gap := range gaps {
		best, seen := m.state.BestGap[pol]
		if !seen || gap < best {
			m.state.BestGap[pol] = gap
		}
	}
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save lab state: %v", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
