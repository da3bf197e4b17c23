package notification

import (
	"context"
	"testing"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	platformevents "github.com/gustavo-devfull/fabricas-sub000/platform/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	readyTo      string
	readyURL     string
	failedTo     string
	failedReason string
	calls        int
}

func (f *fakeSender) SendExportReadyEmail(_ context.Context, toEmail, _, downloadURL string) error {
	f.readyTo = toEmail
	f.readyURL = downloadURL
	f.calls++
	return nil
}

func (f *fakeSender) SendExportFailedEmail(_ context.Context, toEmail, _, reason string) error {
	f.failedTo = toEmail
	f.failedReason = reason
	f.calls++
	return nil
}

type fakeResolver struct {
	url string
}

func (f *fakeResolver) DownloadURL(_ context.Context, _ uuid.UUID) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: f.url, ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

func TestExportCompletedSendsEmailWithDownloadLink(t *testing.T) {
	sender := &fakeSender{}
	m := New(sender, logger.New("test"))
	m.SetExportDownloadResolver(&fakeResolver{url: "https://storage.example/planilha.xlsx"})

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	m.RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.SpreadsheetExportCompleted{
		BaseEvent:   events.NewBaseEvent(),
		JobID:       uuid.New(),
		ObjectKey:   "jobs/planilha.xlsx",
		RequestedBy: "Gustavo",
		NotifyEmail: "gustavo@example.com",
	})
	if err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}

	if sender.readyTo != "gustavo@example.com" {
		t.Fatalf("email sent to %q", sender.readyTo)
	}
	if sender.readyURL != "https://storage.example/planilha.xlsx" {
		t.Fatalf("download url = %q", sender.readyURL)
	}
}

func TestExportFailedSendsEmailWithReason(t *testing.T) {
	sender := &fakeSender{}
	m := New(sender, logger.New("test"))

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	m.RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.SpreadsheetExportFailed{
		BaseEvent:   events.NewBaseEvent(),
		JobID:       uuid.New(),
		Reason:      "failed to build workbook",
		RequestedBy: "Gustavo",
		NotifyEmail: "gustavo@example.com",
	})
	if err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}

	if sender.failedTo != "gustavo@example.com" {
		t.Fatalf("failure email sent to %q", sender.failedTo)
	}
	if sender.failedReason != "failed to build workbook" {
		t.Fatalf("failure reason = %q", sender.failedReason)
	}
}

func TestExportFailedWithoutNotifyEmailOnlyLogs(t *testing.T) {
	sender := &fakeSender{}
	m := New(sender, logger.New("test"))

	err := m.Handle(context.Background(), events.SpreadsheetExportFailed{
		BaseEvent: events.NewBaseEvent(),
		JobID:     uuid.New(),
		Reason:    "failed to build workbook",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("sender called %d times, want 0", sender.calls)
	}
}

func TestExportCompletedWithoutNotifyEmailSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	m := New(sender, logger.New("test"))

	err := m.Handle(context.Background(), events.SpreadsheetExportCompleted{
		BaseEvent: events.NewBaseEvent(),
		JobID:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("sender called %d times, want 0", sender.calls)
	}
}
