package solver

import (
	"sync"

	"InvestLab/internal/model"
)

// stateKey identifies one DP state: time index, agent holdings, and the
// full capacity vector.
type stateKey struct {
	timestep     int
	energetic    int
	instrumental int
	caps         string
}

type entry struct {
	once   sync.Once
	value  float64
	action model.Action
}

// memo is the concurrency-safe memoization cache. The discipline is
// insert-once-per-key: concurrent requests for the same state share a
// single computation and observe the same result, so there are no races on
// partial writes.
type memo struct {
	m sync.Map // stateKey -> *entry
}

func (c *memo) lookup(k stateKey, compute func() (float64, model.Action)) (float64, model.Action) {
	v, _ := c.m.LoadOrStore(k, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.value, e.action = compute()
	})
	return e.value, e.action
}

func (c *memo) size() int {
	n := 0
	c.m.Range(func(_, _ any) bool { n++; return true })
	return n
}
