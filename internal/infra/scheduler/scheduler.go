package scheduler

import (
	"context"
	"fmt"
	"time"

	"expiry_reminder_bot/internal/app"
	"expiry_reminder_bot/internal/domain/expiry"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner performs one reminder pass.
type Runner interface {
	Run(ctx context.Context) (*app.RunSummary, error)
}

// Reporter receives the outcome of every scheduled run.
type Reporter interface {
	Report(summary *app.RunSummary, runErr error)
}

type ReminderScheduler struct {
	cronEngine *cron.Cron
	runner     Runner
	reporter   Reporter
	logger     *logrus.Entry
	cronSpec   string
	runTimeout time.Duration
}

func NewReminderScheduler(
	runner Runner,
	reporter Reporter,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 8 * * *" (08:00 daily, UTC+7)
	runTimeout time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		// The schedule follows the same civil zone as the expiry dates; a run still
		// in progress when the next tick fires is skipped rather than overlapped.
		cronEngine: cron.New(
			cron.WithLocation(expiry.Zone),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		runner:     runner,
		reporter:   reporter,
		logger:     logger,
		cronSpec:   cronSpec,
		runTimeout: runTimeout,
	}
}

// Start registers the reminder job and starts the cron engine.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for reminder run.")
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not add reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Reminder scheduler started.")
	return nil
}

// RunOnce executes a single reminder pass with the configured timeout and reports it.
func (s *ReminderScheduler) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.runTimeout)
	defer cancel()

	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Reminder run failed")
	}
	if s.reporter != nil {
		s.reporter.Report(summary, err)
	}
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
