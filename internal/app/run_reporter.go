// internal/app/run_reporter.go
package app

import (
	"errors"
	"fmt"
	"strings"

	"expiry_reminder_bot/internal/domain/notice"
	"expiry_reminder_bot/internal/domain/registry"
	domainTelegram "expiry_reminder_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RunReporter forwards run outcomes to the admin Telegram chat.
// A nil client or zero admin ID disables it.
type RunReporter struct {
	telegramClient  domainTelegram.Client
	adminTelegramID int64
	logger          *logrus.Entry
}

func NewRunReporter(tc domainTelegram.Client, adminID int64, logger *logrus.Entry) *RunReporter {
	return &RunReporter{
		telegramClient:  tc,
		adminTelegramID: adminID,
		logger:          logger,
	}
}

// Report sends a summary for a finished run, or an alert when runErr is set.
func (r *RunReporter) Report(summary *RunSummary, runErr error) {
	if r.telegramClient == nil || r.adminTelegramID == 0 {
		return
	}

	text := FormatRunReport(summary, runErr)
	if err := r.telegramClient.SendMessage(r.adminTelegramID, text, &telebot.SendOptions{DisableWebPagePreview: true}); err != nil {
		r.logger.WithError(err).WithField("admin_id", r.adminTelegramID).Error("Failed to send run report to admin")
		return
	}
	r.logger.WithField("admin_id", r.adminTelegramID).Debug("Run report sent to admin")
}

// FormatRunReport renders the admin message for a run.
func FormatRunReport(summary *RunSummary, runErr error) string {
	var b strings.Builder
	if runErr != nil {
		b.WriteString("Reminder run FAILED\n")
		var schemaErr *registry.SchemaError
		if errors.As(runErr, &schemaErr) {
			fmt.Fprintf(&b, "Missing columns: %s\n", strings.Join(schemaErr.Missing, ", "))
		} else {
			fmt.Fprintf(&b, "Error: %v\n", runErr)
		}
		if summary == nil {
			return strings.TrimRight(b.String(), "\n")
		}
	} else {
		b.WriteString("Reminder run finished\n")
	}

	if summary.DryRun {
		b.WriteString("(dry run)\n")
	}
	fmt.Fprintf(&b, "Date: %s\n", summary.Today.Format())
	fmt.Fprintf(&b, "Rows: %d, skipped: %d\n", summary.Rows, summary.Skipped)
	fmt.Fprintf(&b, "Resets: %d\n", summary.Resets)
	fmt.Fprintf(&b, "Sent 5-day: %d, 1-day: %d\n", summary.Sent[notice.KindFiveDay], summary.Sent[notice.KindOneDay])
	fmt.Fprintf(&b, "Failures: %d", summary.Failures)
	return b.String()
}
