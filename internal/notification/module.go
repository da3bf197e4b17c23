// Package notification subscribes to domain events and sends the matching
// emails. Domain modules publish events and never touch email providers or
// templates directly.
package notification

import (
	"context"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/email"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
)

// ExportDownloadResolver produces a presigned download URL for a completed
// export job.
type ExportDownloadResolver interface {
	DownloadURL(ctx context.Context, id uuid.UUID) (*storage.PresignedURL, error)
}

// Module handles notification-related event subscriptions.
type Module struct {
	sender  email.Sender
	exports ExportDownloadResolver
	log     *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// SetExportDownloadResolver injects the resolver for export download links.
func (m *Module) SetExportDownloadResolver(resolver ExportDownloadResolver) {
	m.exports = resolver
}

// RegisterHandlers subscribes to the relevant domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.SpreadsheetExportCompleted{}.EventName(), m)
	bus.Subscribe(events.SpreadsheetExportFailed{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.SpreadsheetExportCompleted:
		return m.handleExportCompleted(ctx, e)
	case events.SpreadsheetExportFailed:
		return m.handleExportFailed(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleExportCompleted(ctx context.Context, e events.SpreadsheetExportCompleted) error {
	if e.NotifyEmail == "" {
		return nil
	}

	downloadURL := ""
	if m.exports != nil {
		presigned, err := m.exports.DownloadURL(ctx, e.JobID)
		if err != nil {
			m.log.Warn("failed to resolve export download url", "jobId", e.JobID, "error", err)
		} else {
			downloadURL = presigned.URL
		}
	}

	if err := m.sender.SendExportReadyEmail(ctx, e.NotifyEmail, e.RequestedBy, downloadURL); err != nil {
		m.log.Error("failed to send export-ready email", "jobId", e.JobID, "email", e.NotifyEmail, "error", err)
		return err
	}
	m.log.Info("export-ready email sent", "jobId", e.JobID, "email", e.NotifyEmail)
	return nil
}

func (m *Module) handleExportFailed(ctx context.Context, e events.SpreadsheetExportFailed) error {
	m.log.Warn("spreadsheet export failed", "jobId", e.JobID, "reason", e.Reason)
	if e.NotifyEmail == "" {
		return nil
	}

	if err := m.sender.SendExportFailedEmail(ctx, e.NotifyEmail, e.RequestedBy, e.Reason); err != nil {
		m.log.Error("failed to send export-failed email", "jobId", e.JobID, "email", e.NotifyEmail, "error", err)
		return err
	}
	m.log.Info("export-failed email sent", "jobId", e.JobID, "email", e.NotifyEmail)
	return nil
}
