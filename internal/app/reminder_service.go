// internal/app/reminder_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expiry_reminder_bot/internal/domain/expiry"
	"expiry_reminder_bot/internal/domain/notice"
	"expiry_reminder_bot/internal/domain/registry"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrEmptyRegistry is returned by ResolveSchema when the registry has no header row.
var ErrEmptyRegistry = fmt.Errorf("registry is empty")

// RunSummary counts what a single pass over the registry did.
type RunSummary struct {
	RunID    string
	Today    expiry.CivilDate
	DryRun   bool
	Rows     int
	Skipped  int
	Resets   int
	Sent     map[notice.Kind]int
	Failures int
}

func newRunSummary(runID string, today expiry.CivilDate, dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:  runID,
		Today:  today,
		DryRun: dryRun,
		Sent:   make(map[notice.Kind]int),
	}
}

// ReminderService runs the expiry reminder pass over a registry.
type ReminderService struct {
	store   registry.Store
	sender  notice.Sender
	aliases registry.AliasTable
	logger  *logrus.Entry
	dryRun  bool
	now     func() time.Time
}

func NewReminderService(
	store registry.Store,
	sender notice.Sender,
	aliases registry.AliasTable,
	logger *logrus.Entry,
	dryRun bool,
) *ReminderService {
	if aliases == nil {
		aliases = registry.DefaultAliases()
	}
	return &ReminderService{
		store:   store,
		sender:  sender,
		aliases: aliases,
		logger:  logger,
		dryRun:  dryRun,
		now:     time.Now,
	}
}

// SetClock replaces the time source used to derive today's civil date and the
// sent-marker timestamp.
func (s *ReminderService) SetClock(now func() time.Time) {
	s.now = now
}

// ResolveSchema fetches the registry and resolves its header row without
// touching any data row. It returns the header alongside the schema.
func (s *ReminderService) ResolveSchema(ctx context.Context) ([]string, registry.Schema, error) {
	rows, err := s.store.FetchAllRows(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch registry rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyRegistry
	}
	schema, err := s.aliases.Resolve(rows[0])
	if err != nil {
		return rows[0], nil, err
	}
	return rows[0], schema, nil
}

// Run performs one pass: resolve the header once, then evaluate every data row
// in order. Row-level failures are logged and counted, never returned; an error
// is returned only when the registry cannot be read, its header is incomplete,
// or ctx is cancelled between rows.
func (s *ReminderService) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	runLogger := s.logger.WithField("run_id", runID)

	rows, err := s.store.FetchAllRows(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Failed to fetch registry rows")
		return nil, fmt.Errorf("failed to fetch registry rows: %w", err)
	}

	today := expiry.Today(s.now())
	summary := newRunSummary(runID, today, s.dryRun)

	if len(rows) == 0 {
		runLogger.Info("Registry is empty. Nothing to do.")
		return summary, nil
	}

	schema, err := s.aliases.Resolve(rows[0])
	if err != nil {
		var schemaErr *registry.SchemaError
		if errors.As(err, &schemaErr) {
			runLogger.WithField("missing", schemaErr.Missing).Error("Registry is missing required columns. Aborting run.")
		}
		return nil, fmt.Errorf("failed to resolve registry header: %w", err)
	}

	runLogger.WithFields(logrus.Fields{
		"today":   today.Format(),
		"rows":    len(rows) - 1,
		"dry_run": s.dryRun,
	}).Info("Reminder run started")

	for r := 1; r < len(rows); r++ {
		if err := ctx.Err(); err != nil {
			runLogger.WithField("row", r+1).Warn("Run cancelled before all rows were processed")
			return summary, fmt.Errorf("run interrupted at row %d: %w", r+1, err)
		}
		rec := registry.NewRecord(schema, r, rows[r])
		summary.Rows++
		s.processRecord(ctx, runLogger, schema, today, rec, summary)
	}

	runLogger.WithFields(logrus.Fields{
		"rows":     summary.Rows,
		"skipped":  summary.Skipped,
		"resets":   summary.Resets,
		"sent_5d":  summary.Sent[notice.KindFiveDay],
		"sent_1d":  summary.Sent[notice.KindOneDay],
		"failures": summary.Failures,
	}).Info("Reminder run finished")
	return summary, nil
}

func (s *ReminderService) processRecord(ctx context.Context, runLogger *logrus.Entry, schema registry.Schema, today expiry.CivilDate, rec registry.Record, summary *RunSummary) {
	rowLogger := runLogger.WithField("row", rec.SheetRow())

	if rec.Recipient == "" || rec.ExpiryText == "" {
		summary.Skipped++
		if rec == (registry.Record{Row: rec.Row}) {
			rowLogger.Debug("Blank row skipped")
			return
		}
		rowLogger.WithFields(logrus.Fields{
			"recipient":  rec.Recipient,
			"expiry_raw": rec.ExpiryText,
		}).Warn("Row skipped: recipient or expiry date is empty")
		return
	}

	exp, err := expiry.ParseExpiry(rec.ExpiryText)
	if err != nil {
		summary.Skipped++
		rowLogger.WithFields(logrus.Fields{
			"recipient":  rec.Recipient,
			"expiry_raw": rec.ExpiryText,
		}).Warn("Row skipped: expiry date is not DD/MM/YYYY")
		return
	}

	daysLeft := expiry.DaysBetween(today, exp)
	rowLogger = rowLogger.WithFields(logrus.Fields{
		"recipient": rec.Recipient,
		"expiry":    exp.Format(),
		"days_left": daysLeft,
	})

	decision := notice.Evaluate(daysLeft, rec.Marker5, rec.Marker1)

	if decision.Reset {
		if err := s.resetMarkers(ctx, schema, rec.Row); err != nil {
			summary.Failures++
			rowLogger.WithError(err).Error("Failed to reset markers. Will retry on next run.")
			return
		}
		summary.Resets++
		rowLogger.Info("Markers reset for renewed expiry")
	}

	if decision.Notice == notice.KindNone {
		return
	}

	kindLogger := rowLogger.WithFields(logrus.Fields{
		"kind":    decision.Notice,
		"subject": rec.SubjectName,
	})

	subject, body, err := renderNotice(decision.Notice, rec, exp.Format())
	if err != nil {
		summary.Failures++
		kindLogger.WithError(err).Error("Failed to render notice")
		return
	}

	if err := s.send(ctx, rec.Recipient, subject, body); err != nil {
		summary.Failures++
		kindLogger.WithError(err).Error("Failed to send notice. Marker left unset; will retry on next run.")
		return
	}

	marker := notice.SentMarker(exp, s.now())
	if err := s.writeCell(ctx, rec.Row, schema.Column(decision.Notice.MarkerField()), marker); err != nil {
		summary.Failures++
		kindLogger.WithError(err).Error("Notice sent but marker was not recorded; it may be sent again on next run")
		return
	}

	summary.Sent[decision.Notice]++
	kindLogger.WithField("dry_run", s.dryRun).Info("Notice sent")
}

// resetMarkers clears both markers. The 1-day marker is not touched when the
// 5-day write fails.
func (s *ReminderService) resetMarkers(ctx context.Context, schema registry.Schema, row int) error {
	if err := s.writeCell(ctx, row, schema.Column(registry.FieldMarker5), ""); err != nil {
		return fmt.Errorf("clear 5-day marker: %w", err)
	}
	if err := s.writeCell(ctx, row, schema.Column(registry.FieldMarker1), ""); err != nil {
		return fmt.Errorf("clear 1-day marker: %w", err)
	}
	return nil
}

func (s *ReminderService) writeCell(ctx context.Context, row, col int, value string) error {
	if s.dryRun {
		s.logger.WithFields(logrus.Fields{"row": row + 1, "col": col, "value": value}).Debug("Dry run: cell write skipped")
		return nil
	}
	return s.store.WriteCell(ctx, row, col, value)
}

func (s *ReminderService) send(ctx context.Context, to, subject, body string) error {
	if s.dryRun {
		s.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("Dry run: notice not sent")
		return nil
	}
	return s.sender.Send(ctx, to, subject, body)
}
