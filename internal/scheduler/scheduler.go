// Package scheduler drives periodic benchmark sweeps.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"InvestLab/internal/lab"
)

// Scheduler manages the cron-driven sweep task.
type Scheduler struct {
	Cron  *cron.Cron
	Bench *lab.Bench
	Ctx   context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, bench *lab.Bench) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Bench: bench,
		Ctx:   ctx,
	}
}

// Register registers the sweep task on the given cron expression.
func (s *Scheduler) Register(sweepCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSweepNow executes the sweep immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunSweepNow() {
	s.sweepTask()
}

func (s *Scheduler) sweepTask() {
	if s.Ctx.Err() != nil {
		return
	}
	log.Println("[INFO] running benchmark sweep")
	result, err := s.Bench.RunSuite()
	if err != nil {
		log.Printf("[ERROR] sweep: %v", err)
		return
	}
	log.Printf("[INFO] sweep complete: %d runs, %d policies compared", result.Runs, len(result.Gaps))
}
