// Package jobs runs the background cron schedule. The only job today is the
// nightly aggregate sweep that rebuilds derived hour totals for every user,
// healing any drift before it becomes user-visible.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hourglass-app/hourglass-backend/internal/logging"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/service"
)

type Scheduler struct {
	users *service.UserService
	log   logging.Logger
	cron  *cron.Cron
}

func NewScheduler(users *service.UserService, log logging.Logger) *Scheduler {
	return &Scheduler{
		users: users,
		log:   log,
		cron:  cron.New(cron.WithSeconds()),
	}
}

// Start registers the nightly sweep (12:00 AM) and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 0 0 * * *", s.runSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info(context.Background(), "cron scheduler started", "job", "aggregate sweep", "schedule", "nightly 00:00")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.log.Info(ctx, "aggregate sweep started")
	if err := s.users.RecomputeAll(ctx); err != nil {
		s.log.Error(ctx, "aggregate sweep failed", "err", err)
		return
	}
	s.log.Info(ctx, "aggregate sweep finished")
}
