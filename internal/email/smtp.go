package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendExportReadyEmail(ctx context.Context, toEmail, requestedBy, downloadURL string) error {
	content, err := renderEmailTemplate("export_ready.html", exportReadyEmailData{
		baseEmailData: baseEmailData{
			Title:    "Planilha pronta",
			Heading:  "Sua planilha está pronta",
			CTALabel: "Baixar planilha",
			CTAURL:   downloadURL,
		},
		RequestedBy: requestedBy,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectExportReady, content)
}

func (s *SMTPSender) SendExportFailedEmail(ctx context.Context, toEmail, requestedBy, reason string) error {
	content, err := renderEmailTemplate("export_failed.html", exportFailedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Falha na exportação",
			Heading: "Falha ao gerar a planilha",
		},
		RequestedBy: requestedBy,
		Reason:      reason,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectExportFailed, content)
}

var _ Sender = (*SMTPSender)(nil)
