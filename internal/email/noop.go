package email

import (
	"context"

	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"
)

// NoopSender is used when email delivery is disabled. It logs instead of
// sending so local environments still show what would have gone out.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a NoopSender.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendExportReadyEmail(_ context.Context, toEmail, _, downloadURL string) error {
	s.log.Info("email disabled, skipping export-ready email", "to", toEmail, "downloadUrl", downloadURL)
	return nil
}

func (s *NoopSender) SendExportFailedEmail(_ context.Context, toEmail, _, reason string) error {
	s.log.Info("email disabled, skipping export-failed email", "to", toEmail, "reason", reason)
	return nil
}

var _ Sender = (*NoopSender)(nil)
