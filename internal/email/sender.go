// Package email sends transactional emails for the admin portal over SMTP.
package email

import "context"

// Sender delivers the portal's transactional emails.
type Sender interface {
	// SendExportReadyEmail tells the requester their spreadsheet is ready.
	SendExportReadyEmail(ctx context.Context, toEmail, requestedBy, downloadURL string) error
	// SendExportFailedEmail tells the requester their export failed.
	SendExportFailedEmail(ctx context.Context, toEmail, requestedBy, reason string) error
}
