package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler invokes the runner on a fixed interval until stopped. One run
// at a time; the next tick waits for the previous run to finish.
type Scheduler struct {
	runner   *Runner
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(runner *Runner, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.loop()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("batch scheduler started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ticker.C:
			s.runner.RunAll(context.Background(), Scope{})
		case <-s.stop:
			s.logger.Info("batch scheduler stopped")
			return
		}
	}
}
