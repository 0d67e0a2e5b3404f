package cli

import (
	"os/signal"
	"syscall"
	"time"

	"expiry_reminder_bot/internal/infra/scheduler"

	"github.com/spf13/cobra"
)

const defaultRunTimeout = 10 * time.Minute

// NewServeCommand keeps the process alive and runs reminders on CRON_SPEC.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var runNow bool
	var runTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run reminder passes on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, err := buildComponents(ctx, opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer c.close()

			sched := scheduler.NewReminderScheduler(c.service, c.reporter, opts.log.WithField("component", "scheduler"), opts.cfg.CronSpec, runTimeout)
			if err := sched.Start(); err != nil {
				return err
			}

			if runNow {
				sched.RunOnce(ctx)
			}

			opts.log.Info("Application setup complete. Waiting for scheduled runs...")
			<-ctx.Done() // Block until a signal is received

			opts.log.Info("Shutting down application...")
			sched.Stop()
			opts.log.Info("Application shut down gracefully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one pass immediately before waiting for the schedule")
	cmd.Flags().DurationVar(&runTimeout, "run-timeout", defaultRunTimeout, "maximum duration of a single pass")
	return cmd
}
