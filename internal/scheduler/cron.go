package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/internal/controllers"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron       *cron.Cron
	seedCtrl   *controllers.SeedController
	reseedSpec string
	logger     *logrus.Logger
}

// NewScheduler creates a new scheduler. reseedSpec is a cron expression
// for the periodic catalog reseed; empty disables it.
func NewScheduler(seedCtrl *controllers.SeedController, reseedSpec string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		seedCtrl:   seedCtrl,
		reseedSpec: reseedSpec,
		logger:     logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if s.reseedSpec == "" {
		s.logger.Debug("Scheduled reseed disabled")
		return nil
	}

	s.logger.WithField("spec", s.reseedSpec).Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.reseedSpec, func() {
		s.runReseed()
	})
	if err != nil {
		return fmt.Errorf("failed to add reseed job: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runReseed() {
	s.logger.Info("Running scheduled reseed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := s.seedCtrl.Reseed(ctx); err != nil {
		s.logger.WithError(err).Error("Scheduled reseed failed")
		return
	}

	s.logger.Info("Scheduled reseed completed")
}
