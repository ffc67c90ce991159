// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package scheduler wraps gocron for the daemon's periodic refresh jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/skyquorum/skyquorum/internal/logger"
)

// Scheduler runs named interval jobs until shut down.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *logger.Logger
}

// New creates a stopped scheduler. Jobs are added with AddJob and begin to
// run once Start is called.
func New(log *logger.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: sched, logger: log}, nil
}

// AddJob registers a task that runs immediately on Start and then on every
// interval tick. A tick that fires while the previous run is still active is
// rescheduled instead of piling up.
func (s *Scheduler) AddJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	s.logger.Debug("scheduled job", "name", jobName, "interval", interval)
	return nil
}

// Start begins executing the registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
