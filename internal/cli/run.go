package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"expiry_reminder_bot/internal/domain/expiry"

	"github.com/spf13/cobra"
)

// asOfHour is the simulated wall-clock hour (UTC+7) used with --as-of.
const asOfHour = 8

// NewRunCommand runs a single reminder pass, the mode used from an external scheduler.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one reminder pass over the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var clock func() time.Time
			if asOf != "" {
				var err error
				clock, err = fixedClock(asOf)
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, err := buildComponents(ctx, opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer c.close()

			if clock != nil {
				c.service.SetClock(clock)
				opts.log.WithField("as_of", asOf).Warn("Running with a simulated date")
			}

			summary, err := c.service.Run(ctx)
			c.reporter.Report(summary, err)
			return err
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate the registry as if today were this DD/MM/YYYY date")
	return cmd
}

// fixedClock returns a clock stuck at asOfHour on the given civil date.
func fixedClock(date string) (func() time.Time, error) {
	d, err := expiry.ParseExpiry(date)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of: %w", err)
	}
	t := time.Date(d.Year, d.Month, d.Day, asOfHour, 0, 0, 0, expiry.Zone)
	return func() time.Time { return t }, nil
}
