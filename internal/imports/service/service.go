// Package service implements the imports view: the aggregated per-factory
// import structure derived from flat quotes, plus the operations that
// mutate its persisted overlay and export state.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/repository"
	"github.com/gustavo-devfull/fabricas-sub000/platform/cache"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
)

const groupsCacheKey = "aggregated-groups"

// MetadataStore persists the user-editable overlay merged onto bucketed
// quotes. Satisfied by the module's pgx repository; tests substitute an
// in-memory map.
type MetadataStore interface {
	ListByFactory(ctx context.Context, factoryID uuid.UUID) (map[string]aggregation.ImportMetadata, error)
	Upsert(ctx context.Context, factoryID uuid.UUID, bucketID string, params repository.UpsertParams) error
}

var _ MetadataStore = (*repository.Repository)(nil)

// Service implements the imports view logic.
type Service struct {
	repo      MetadataStore
	quotes    ports.QuoteReader
	writer    ports.QuoteOrderWriter
	factories ports.FactoryReader
	comments  ports.CommentCounter
	log       *logger.Logger

	viewCache cache.Cache
	cacheTTL  time.Duration
	eventBus  events.Bus

	// policy decides how product references are compared during duplicate
	// detection. Matching is trim-only (case-sensitive) unless configured
	// otherwise.
	policy aggregation.RefNormalization
}

// New creates a new imports service.
func New(repo MetadataStore, quotes ports.QuoteReader, writer ports.QuoteOrderWriter, factories ports.FactoryReader, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		quotes:    quotes,
		writer:    writer,
		factories: factories,
		log:       log,
		policy:    aggregation.NormalizeTrim,
	}
}

// SetEventBus injects the event bus for publishing domain events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// SetCache injects the TTL cache used to memoize the aggregated groups
// between loads. Without a cache every view request recomputes from the
// database.
func (s *Service) SetCache(c cache.Cache, ttl time.Duration) {
	s.viewCache = c
	s.cacheTTL = ttl
}

// SetCommentCounter injects the comment-count collaborator.
func (s *Service) SetCommentCounter(counter ports.CommentCounter) {
	s.comments = counter
}

// SetRefNormalization overrides the duplicate-detection comparison policy.
func (s *Service) SetRefNormalization(policy aggregation.RefNormalization) {
	s.policy = policy
}

// RegisterHandlers subscribes to the quote lifecycle events that invalidate
// the memoized view.
func (s *Service) RegisterHandlers(bus events.Bus) {
	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		s.invalidate(ctx)
		return nil
	})
	bus.Subscribe(events.QuoteCreated{}.EventName(), invalidate)
	bus.Subscribe(events.QuoteUpdated{}.EventName(), invalidate)
	bus.Subscribe(events.QuoteDeleted{}.EventName(), invalidate)
}

// FactoryView is one factory's slice of the aggregated view.
type FactoryView struct {
	Factory       aggregation.FactoryInfo
	Imports       []aggregation.Import
	Summary       aggregation.FactorySummary
	Exported      bool
	CommentCounts map[string]int
}

// GetAggregatedView runs the full pipeline: group, summarize, filter, sort.
// Only factories retaining at least one import after filtering are returned.
func (s *Service) GetAggregatedView(ctx context.Context, filters aggregation.Filters, flags aggregation.SortFlags) ([]FactoryView, error) {
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}

	filtered := aggregation.ApplyFilters(groups, filters, flags)
	views := make([]FactoryView, 0, len(filtered))
	for _, group := range filtered {
		view := FactoryView{
			Factory:  group.Factory,
			Imports:  group.Imports,
			Summary:  aggregation.SummarizeFactory(group),
			Exported: aggregation.FactoryExported(group),
		}
		if s.comments != nil {
			counts, err := s.comments.CountByImport(ctx, group.Factory.ID)
			if err != nil {
				return nil, err
			}
			view.CommentCounts = counts
		}
		views = append(views, view)
	}
	return views, nil
}

// DetectDuplicates scans the aggregated groups for repeated references.
func (s *Service) DetectDuplicates(ctx context.Context, scope aggregation.Scope) ([]aggregation.DuplicateRecord, error) {
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.DetectDuplicates(scope, groups, s.policy), nil
}

// UpsertImportMetadata merges overlay fields for one import bucket.
func (s *Service) UpsertImportMetadata(ctx context.Context, factoryID uuid.UUID, bucketID string, params repository.UpsertParams) error {
	if err := s.repo.Upsert(ctx, factoryID, bucketID, params); err != nil {
		return err
	}
	s.invalidate(ctx)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.ImportMetadataUpdated{
			BaseEvent: events.NewBaseEvent(),
			FactoryID: factoryID,
			ImportID:  bucketID,
		})
	}
	return nil
}

// MarkReplacement flips an import's replacement flag, which removes (or
// restores) its products in duplicate detection.
func (s *Service) MarkReplacement(ctx context.Context, factoryID uuid.UUID, bucketID string, isReplacement bool) error {
	return s.UpsertImportMetadata(ctx, factoryID, bucketID, repository.UpsertParams{IsReplacement: &isReplacement})
}

// loadGroups assembles the unfiltered aggregated groups, memoized in the
// injected cache. The memoized form is the pipeline input, so filters and
// sorts still run per request.
func (s *Service) loadGroups(ctx context.Context) ([]aggregation.FactoryGroup, error) {
	if s.viewCache != nil {
		if raw, err := s.viewCache.Get(ctx, groupsCacheKey); err == nil {
			var groups []aggregation.FactoryGroup
			if err := json.Unmarshal(raw, &groups); err == nil {
				return groups, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("view cache read failed", "error", err)
		}
	}

	groups, err := s.computeGroups(ctx)
	if err != nil {
		return nil, err
	}

	if s.viewCache != nil {
		if raw, err := json.Marshal(groups); err == nil {
			if err := s.viewCache.Set(ctx, groupsCacheKey, raw, s.cacheTTL); err != nil {
				s.log.Warn("view cache write failed", "error", err)
			}
		}
	}
	return groups, nil
}

func (s *Service) computeGroups(ctx context.Context) ([]aggregation.FactoryGroup, error) {
	factories, err := s.factories.List(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]aggregation.FactoryGroup, 0, len(factories))
	for _, factory := range factories {
		quotes, err := s.quotes.ListByFactory(ctx, factory.ID)
		if err != nil {
			return nil, err
		}
		metadata, err := s.repo.ListByFactory(ctx, factory.ID)
		if err != nil {
			return nil, err
		}

		imports, dropped := aggregation.GroupQuotesByImport(quotes, metadata)
		if dropped > 0 {
			s.log.QuotesDroppedFromGrouping(factory.ID.String(), dropped)
		}
		if len(imports) == 0 {
			continue
		}
		groups = append(groups, aggregation.FactoryGroup{Factory: factory, Imports: imports})
	}
	return groups, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.viewCache == nil {
		return
	}
	if err := s.viewCache.Clear(ctx, groupsCacheKey); err != nil {
		s.log.Warn("view cache invalidation failed", "error", err)
	}
}
