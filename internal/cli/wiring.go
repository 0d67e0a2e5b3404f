package cli

import (
	"context"
	"fmt"

	"expiry_reminder_bot/internal/app"
	"expiry_reminder_bot/internal/domain/registry"
	"expiry_reminder_bot/internal/infra/config"
	idb "expiry_reminder_bot/internal/infra/database"
	"expiry_reminder_bot/internal/infra/mailer"
	"expiry_reminder_bot/internal/infra/sheets"
	"expiry_reminder_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

// components are the collaborators built from configuration.
type components struct {
	service  *app.ReminderService
	reporter *app.RunReporter
	close    func()
}

func buildComponents(ctx context.Context, cfg *config.AppConfig, log *logrus.Entry) (*components, error) {
	c := &components{close: func() {}}

	store, err := buildStore(ctx, cfg, c)
	if err != nil {
		return nil, err
	}
	log.WithField("backend", cfg.StoreBackend).Info("Registry store initialized.")

	aliases, err := config.LoadAliases(cfg.HeaderAliasesFile)
	if err != nil {
		c.close()
		return nil, err
	}

	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	c.service = app.NewReminderService(store, sender, aliases, log.WithField("service", "reminder"), cfg.DryRun)

	c.reporter = app.NewRunReporter(nil, 0, log)
	if cfg.AlertsEnabled() {
		tg, err := telegram.NewAlertBot(cfg.TelegramToken)
		if err != nil {
			// Alerts are auxiliary; a broken bot token must not stop reminders.
			log.WithError(err).Error("Could not create Telegram alert bot. Run reports disabled.")
		} else {
			c.reporter = app.NewRunReporter(tg, cfg.AdminTelegramID, log)
			log.WithField("admin_id", cfg.AdminTelegramID).Info("Telegram run reports enabled.")
		}
	}
	return c, nil
}

func buildStore(ctx context.Context, cfg *config.AppConfig, c *components) (registry.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSheets:
		creds := sheets.Credentials{ClientEmail: cfg.GoogleClientEmail, PrivateKey: cfg.GooglePrivateKey}
		return sheets.NewStore(ctx, creds, cfg.SheetID, cfg.SheetName, cfg.SheetReadRows)
	case config.BackendPostgres, config.BackendSQLite:
		dialect, err := idb.DialectFor(cfg.StoreBackend)
		if err != nil {
			return nil, err
		}
		db, err := idb.NewConnection(dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		c.close = func() { db.Close() }
		return idb.NewSQLStore(db, dialect, cfg.DBTable, cfg.DBKeyColumn), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
