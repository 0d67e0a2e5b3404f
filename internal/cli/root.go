package cli

import (
	"expiry_reminder_bot/internal/infra/config"
	"expiry_reminder_bot/internal/infra/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the configuration loaded for every command.
type RootOptions struct {
	DryRun bool

	cfg *config.AppConfig
	log *logrus.Entry
}

// NewRootCommand creates the root command for the reminder CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "reminder",
		Short:         "Expiry reminder for the GPT access registry",
		Long:          "Scans the access registry and emails reminders 5 days and 1 day before each grant expires.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.DryRun {
				cfg.DryRun = true
			}
			logger.Init(cfg)
			opts.cfg = cfg
			opts.log = logger.Component(cmd.Name())
			opts.log.WithFields(logrus.Fields{
				"backend":     cfg.StoreBackend,
				"environment": cfg.Environment,
				"dry_run":     cfg.DryRun,
			}).Info("Configuration loaded")
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.DryRun, "dry-run", false, "log decisions without writing markers or sending mail")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCheckHeadersCommand(opts))

	return cmd
}
