package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	importsvc "github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/scheduler"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ViewProvider supplies the aggregated view the workbook is built from.
type ViewProvider interface {
	GetAggregatedView(ctx context.Context, filters aggregation.Filters, flags aggregation.SortFlags) ([]importsvc.FactoryView, error)
}

// Generator is the worker side of export jobs: it builds the workbook,
// uploads it and completes the job row.
type Generator struct {
	jobs     *Repository
	view     ViewProvider
	storage  storage.StorageService
	bucket   string
	eventBus events.Bus
	log      *logger.Logger
}

// NewGenerator creates a new spreadsheet generator
func NewGenerator(jobs *Repository, view ViewProvider, log *logger.Logger) *Generator {
	return &Generator{jobs: jobs, view: view, log: log}
}

// SetStorage injects the object storage the workbook is uploaded to.
func (g *Generator) SetStorage(svc storage.StorageService, bucket string) {
	g.storage = svc
	g.bucket = bucket
}

// SetEventBus injects the event bus for publishing domain events.
func (g *Generator) SetEventBus(bus events.Bus) {
	g.eventBus = bus
}

// HandleTask processes one spreadsheet generation task. Returning an error
// lets asynq retry; the job row is marked failed on every attempt so its
// status never reads processing while no worker holds it.
func (g *Generator) HandleTask(ctx context.Context, task *asynq.Task) error {
	payload, err := scheduler.ParseGenerateSpreadsheetPayload(task)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}

	job, err := g.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == StatusCompleted {
		return nil
	}
	if err := g.jobs.MarkProcessing(ctx, job.ID); err != nil {
		return err
	}

	views, err := g.view.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		return g.fail(ctx, job, "failed to load aggregated view", err)
	}
	if job.FactoryID != nil {
		views = filterByFactory(views, *job.FactoryID)
	}

	workbook, err := buildWorkbook(views)
	if err != nil {
		return g.fail(ctx, job, "failed to build workbook", err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return g.fail(ctx, job, "failed to encode workbook", err)
	}

	if g.storage == nil {
		return g.fail(ctx, job, "export storage is not configured", fmt.Errorf("storage not configured"))
	}
	fileName := fmt.Sprintf("cotacoes-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	objectKey, err := g.storage.UploadFile(ctx, g.bucket, job.ID.String(), fileName, xlsxContentType, buf, int64(buf.Len()))
	if err != nil {
		return g.fail(ctx, job, "failed to upload workbook", err)
	}

	if err := g.jobs.MarkCompleted(ctx, job.ID, objectKey); err != nil {
		return err
	}
	g.log.Info("export job completed", "jobId", job.ID, "objectKey", objectKey, "factories", len(views))

	if g.eventBus != nil {
		g.eventBus.Publish(ctx, events.SpreadsheetExportCompleted{
			BaseEvent:   events.NewBaseEvent(),
			JobID:       job.ID,
			ObjectKey:   objectKey,
			RequestedBy: job.RequestedBy,
			NotifyEmail: job.NotifyEmail,
		})
	}
	return nil
}

func (g *Generator) fail(ctx context.Context, job *Job, reason string, cause error) error {
	g.log.Error("export job failed", "jobId", job.ID, "reason", reason, "error", cause)
	if err := g.jobs.MarkFailed(ctx, job.ID, reason); err != nil {
		g.log.Error("failed to mark export job failed", "jobId", job.ID, "error", err)
	}
	// Attempts with retries left re-mark the row and return silently; the
	// event (and the requester's failure email) fires once, on the final
	// attempt. Outside a retrying server both counters read zero, so the
	// event still fires.
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if g.eventBus != nil && retried >= maxRetry {
		g.eventBus.Publish(ctx, events.SpreadsheetExportFailed{
			BaseEvent:   events.NewBaseEvent(),
			JobID:       job.ID,
			Reason:      reason,
			RequestedBy: job.RequestedBy,
			NotifyEmail: job.NotifyEmail,
		})
	}
	return fmt.Errorf("%s: %w", reason, cause)
}

func filterByFactory(views []importsvc.FactoryView, factoryID uuid.UUID) []importsvc.FactoryView {
	out := make([]importsvc.FactoryView, 0, 1)
	for _, view := range views {
		if view.Factory.ID == factoryID {
			out = append(out, view)
		}
	}
	return out
}
