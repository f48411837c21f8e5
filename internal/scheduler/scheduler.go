// Package scheduler runs the periodic wallet jobs: profit accrual and recurring transactions.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one pass over all wallets; it returns how many wallets it changed.
type Job func(ctx context.Context) (int, error)

type task struct {
	name     string
	interval time.Duration
	run      Job
}

type Scheduler struct {
	log   *zap.Logger
	tasks []task
	wg    sync.WaitGroup
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Every registers job to run once per interval. Non-positive intervals disable the job.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) {
	if interval <= 0 {
		s.log.Info("job disabled", zap.String("job", name))
		return
	}
	s.tasks = append(s.tasks, task{name: name, interval: interval, run: job})
}

// Start launches one goroutine per job. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
}

// Wait blocks until every job goroutine has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t task) {
	defer s.wg.Done()
	s.log.Info("job started", zap.String("job", t.name), zap.Duration("interval", t.interval))
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("job stopping", zap.String("job", t.name))
			return
		case <-ticker.C:
			start := time.Now()
			n, err := t.run(ctx)
			if err != nil && ctx.Err() == nil {
				s.log.Error("job failed", zap.String("job", t.name), zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Debug("job pass", zap.String("job", t.name), zap.Int("changed", n), zap.Duration("took", time.Since(start)))
			}
		}
	}
}
