package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// toggleConcurrency caps the number of in-flight per-quote writes.
const toggleConcurrency = 8

// ToggleResult reports the outcome of a factory-wide export toggle.
type ToggleResult struct {
	Target  aggregation.OrderStatus
	Total   int
	Updated int
	Failed  int
	Warning string
}

// ToggleFactoryExportStatus flips every quote of a factory between pending
// and exported. The writes are issued concurrently as independent updates;
// there is no transactional rollback. A partial failure leaves the store in
// a mixed state which the next reload surfaces as-is, so the returned error
// tells the caller to reload and re-toggle.
//
// Each write re-reads the quote's current dataPedido/lotePedido immediately
// before writing and carries those same values, so concurrent edits to the
// order fields are not clobbered by the toggle.
func (s *Service) ToggleFactoryExportStatus(ctx context.Context, factoryID uuid.UUID, actorName string) (ToggleResult, error) {
	quotes, err := s.quotes.ListByFactory(ctx, factoryID)
	if err != nil {
		return ToggleResult{}, err
	}

	if len(quotes) == 0 {
		s.log.Warn("export toggle on factory with no quotes", "factoryId", factoryID.String())
		return ToggleResult{Warning: "factory has no quotes; nothing to toggle"}, nil
	}

	target := toggleTarget(quotes)
	var exportedAt *time.Time
	if target == aggregation.StatusExported {
		now := time.Now().UTC()
		exportedAt = &now
	}

	var (
		mu       sync.Mutex
		firstErr error
		failed   int
	)

	// No errgroup context here on purpose: a failed write must not cancel
	// its siblings, because the batch has no rollback and cancelling would
	// only make the mixed state harder to reason about.
	var g errgroup.Group
	g.SetLimit(toggleConcurrency)
	for _, quote := range quotes {
		quoteID := quote.ID
		g.Go(func() error {
			if err := s.toggleOne(ctx, quoteID, target, exportedAt); err != nil {
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result := ToggleResult{
		Target:  target,
		Total:   len(quotes),
		Updated: len(quotes) - failed,
		Failed:  failed,
	}

	s.invalidate(ctx)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.FactoryExportToggled{
			BaseEvent: events.NewBaseEvent(),
			FactoryID: factoryID,
			Exported:  target == aggregation.StatusExported,
			Updated:   result.Updated,
			Failed:    result.Failed,
			ActorName: actorName,
		})
	}

	if failed > 0 {
		s.log.Error("export toggle partially failed",
			"factoryId", factoryID.String(), "updated", result.Updated, "failed", failed, "error", firstErr)
		return result, apperr.PartialFailure(fmt.Sprintf(
			"export toggle updated %d of %d quotes; some quotes were left in the previous state — reload and re-toggle",
			result.Updated, result.Total))
	}
	return result, nil
}

func (s *Service) toggleOne(ctx context.Context, quoteID uuid.UUID, target aggregation.OrderStatus, exportedAt *time.Time) error {
	fields, err := s.writer.GetOrderFields(ctx, quoteID)
	if err != nil {
		return err
	}
	return s.writer.SetOrderStatus(ctx, quoteID, target, exportedAt, fields)
}

// toggleTarget decides the transition direction: a factory whose quotes are
// all exported goes back to pending; any pending quote means the factory
// exports.
func toggleTarget(quotes []aggregation.Product) aggregation.OrderStatus {
	for _, q := range quotes {
		if !q.OrderStatus.Exported() {
			return aggregation.StatusExported
		}
	}
	return aggregation.StatusPending
}
