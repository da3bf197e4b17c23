package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/repository"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"
	"github.com/gustavo-devfull/fabricas-sub000/platform/cache"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"

	"github.com/google/uuid"
)

// fakeQuoteStore backs both the reader and order-writer ports with an
// in-memory map, so toggle semantics can be asserted without a database.
type fakeQuoteStore struct {
	mu     sync.Mutex
	quotes map[uuid.UUID]*aggregation.Product
	failOn map[uuid.UUID]bool
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{
		quotes: make(map[uuid.UUID]*aggregation.Product),
		failOn: make(map[uuid.UUID]bool),
	}
}

func (f *fakeQuoteStore) add(p aggregation.Product) {
	f.quotes[p.ID] = &p
}

func (f *fakeQuoteStore) ListByFactory(_ context.Context, factoryID uuid.UUID) ([]aggregation.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []aggregation.Product
	for _, q := range f.quotes {
		if q.FactoryID == factoryID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuoteStore) ListAll(_ context.Context) ([]aggregation.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []aggregation.Product
	for _, q := range f.quotes {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuoteStore) GetOrderFields(_ context.Context, quoteID uuid.UUID) (ports.OrderFields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok {
		return ports.OrderFields{}, errors.New("quote not found")
	}
	return ports.OrderFields{DataPedido: q.DataPedido, LotePedido: q.LotePedido}, nil
}

func (f *fakeQuoteStore) SetOrderStatus(_ context.Context, quoteID uuid.UUID, status aggregation.OrderStatus, exportedAt *time.Time, fields ports.OrderFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[quoteID] {
		return errors.New("write failed")
	}
	q, ok := f.quotes[quoteID]
	if !ok {
		return errors.New("quote not found")
	}
	q.OrderStatus = status
	q.ExportedAt = exportedAt
	q.DataPedido = fields.DataPedido
	q.LotePedido = fields.LotePedido
	return nil
}

// fakeMetadataStore holds overlays in memory, keyed like the table.
type fakeMetadataStore struct {
	byFactory map[uuid.UUID]map[string]aggregation.ImportMetadata
}

func newFakeMetadataStore() *fakeMetadataStore {
	return &fakeMetadataStore{byFactory: make(map[uuid.UUID]map[string]aggregation.ImportMetadata)}
}

func (f *fakeMetadataStore) ListByFactory(_ context.Context, factoryID uuid.UUID) (map[string]aggregation.ImportMetadata, error) {
	out := make(map[string]aggregation.ImportMetadata, len(f.byFactory[factoryID]))
	for k, v := range f.byFactory[factoryID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeMetadataStore) Upsert(_ context.Context, factoryID uuid.UUID, bucketID string, params repository.UpsertParams) error {
	buckets, ok := f.byFactory[factoryID]
	if !ok {
		buckets = make(map[string]aggregation.ImportMetadata)
		f.byFactory[factoryID] = buckets
	}
	meta := buckets[bucketID]
	if params.ImportName != nil {
		meta.ImportName = *params.ImportName
	}
	if params.QuoteName != nil {
		meta.QuoteName = *params.QuoteName
	}
	if params.DataPedido != nil {
		meta.DataPedido = *params.DataPedido
	}
	if params.LotePedido != nil {
		meta.LotePedido = *params.LotePedido
	}
	if params.IsReplacement != nil {
		meta.IsReplacement = *params.IsReplacement
	}
	buckets[bucketID] = meta
	return nil
}

// fakeCache is a TTL-less in-memory cache; entries live until cleared.
type fakeCache struct {
	entries map[string][]byte
	clears  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Clear(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.clears++
	return nil
}

type fakeFactories struct {
	factories []aggregation.FactoryInfo
}

func (f *fakeFactories) List(_ context.Context) ([]aggregation.FactoryInfo, error) {
	return f.factories, nil
}

func (f *fakeFactories) GetByID(_ context.Context, id uuid.UUID) (aggregation.FactoryInfo, error) {
	for _, factory := range f.factories {
		if factory.ID == id {
			return factory, nil
		}
	}
	return aggregation.FactoryInfo{}, errors.New("factory not found")
}

func newTestService(t *testing.T, store *fakeQuoteStore, factories *fakeFactories) *Service {
	t.Helper()
	return New(nil, store, store, factories, logger.New("test"))
}

func quoteAt(factoryID uuid.UUID, ref string, createdAt time.Time) aggregation.Product {
	c := createdAt
	return aggregation.Product{
		ID:          uuid.New(),
		FactoryID:   factoryID,
		Ref:         ref,
		OrderStatus: aggregation.StatusPending,
		CreatedAt:   &c,
	}
}

func TestToggleFactoryExportStatusCompleteness(t *testing.T) {
	factoryID := uuid.New()
	store := newFakeQuoteStore()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		q := quoteAt(factoryID, "R", base.Add(time.Duration(i)*time.Second))
		q.DataPedido = "10/03/2026"
		q.LotePedido = "L-1"
		store.add(q)
	}

	svc := newTestService(t, store, &fakeFactories{})

	result, err := svc.ToggleFactoryExportStatus(context.Background(), factoryID, "tester")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.Target != aggregation.StatusExported || result.Updated != 5 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for _, q := range store.quotes {
		if !q.OrderStatus.Exported() || q.ExportedAt == nil {
			t.Fatalf("quote not exported: %+v", q)
		}
	}

	// Re-toggling returns every quote to pending with order fields intact.
	result, err = svc.ToggleFactoryExportStatus(context.Background(), factoryID, "tester")
	if err != nil {
		t.Fatalf("re-toggle failed: %v", err)
	}
	if result.Target != aggregation.StatusPending || result.Updated != 5 {
		t.Fatalf("unexpected re-toggle result: %+v", result)
	}
	for _, q := range store.quotes {
		if q.OrderStatus.Exported() || q.ExportedAt != nil {
			t.Fatalf("quote still exported: %+v", q)
		}
		if !q.OrderStatus.SelectedForOrder() {
			t.Fatalf("quote not selected after re-toggle: %+v", q)
		}
		if q.DataPedido != "10/03/2026" || q.LotePedido != "L-1" {
			t.Fatalf("order fields clobbered: %+v", q)
		}
	}
}

func TestToggleFactoryExportStatusZeroQuotesIsNoOp(t *testing.T) {
	svc := newTestService(t, newFakeQuoteStore(), &fakeFactories{})

	result, err := svc.ToggleFactoryExportStatus(context.Background(), uuid.New(), "tester")
	if err != nil {
		t.Fatalf("zero-quote toggle must not error: %v", err)
	}
	if result.Warning == "" {
		t.Fatal("expected warning for empty factory")
	}
	if result.Total != 0 || result.Updated != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestToggleFactoryExportStatusPartialFailure(t *testing.T) {
	factoryID := uuid.New()
	store := newFakeQuoteStore()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	var victim uuid.UUID
	for i := 0; i < 3; i++ {
		q := quoteAt(factoryID, "R", base.Add(time.Duration(i)*time.Second))
		store.add(q)
		victim = q.ID
	}
	store.failOn[victim] = true

	svc := newTestService(t, store, &fakeFactories{})

	result, err := svc.ToggleFactoryExportStatus(context.Background(), factoryID, "tester")
	if err == nil {
		t.Fatal("expected partial-failure error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindPartialFailure {
		t.Fatalf("unexpected error type: %v", err)
	}
	if result.Updated != 2 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// The failed quote keeps its previous state; no rollback of the others.
	if store.quotes[victim].OrderStatus.Exported() {
		t.Fatal("failed quote must not transition")
	}
	exported := 0
	for _, q := range store.quotes {
		if q.OrderStatus.Exported() {
			exported++
		}
	}
	if exported != 2 {
		t.Fatalf("exported = %d, want 2 (mixed state preserved)", exported)
	}
}

func TestTogglePreservesConcurrentOrderFieldEdits(t *testing.T) {
	factoryID := uuid.New()
	store := newFakeQuoteStore()
	q := quoteAt(factoryID, "R", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	store.add(q)

	// Simulate an edit landing after the view loaded but before the toggle
	// write: the re-read guard must carry the fresh value through.
	store.quotes[q.ID].DataPedido = "22/04/2026"

	svc := newTestService(t, store, &fakeFactories{})
	if _, err := svc.ToggleFactoryExportStatus(context.Background(), factoryID, "tester"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if store.quotes[q.ID].DataPedido != "22/04/2026" {
		t.Fatalf("concurrent edit clobbered: %q", store.quotes[q.ID].DataPedido)
	}
}

func TestQuoteEditInvalidatesMemoizedView(t *testing.T) {
	ctx := context.Background()
	factoryID := uuid.New()
	store := newFakeQuoteStore()
	q := quoteAt(factoryID, "R-1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	q.Ctns = 2
	q.UnitCtn = 1
	q.UnitPrice = 10
	store.add(q)

	factories := &fakeFactories{factories: []aggregation.FactoryInfo{{ID: factoryID, Name: "Fábrica Norte"}}}
	svc := New(newFakeMetadataStore(), store, store, factories, logger.New("test"))
	viewCache := newFakeCache()
	svc.SetCache(viewCache, time.Minute)

	bus := events.NewInMemoryBus(logger.New("test"))
	svc.RegisterHandlers(bus)

	views, err := svc.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		t.Fatalf("first view failed: %v", err)
	}
	if len(views) != 1 || views[0].Summary.TotalAmount != 20 {
		t.Fatalf("unexpected initial view: %+v", views)
	}

	// A price edit lands in the store. The memoized groups still carry the
	// old price, so a reload before invalidation serves the stale total.
	store.quotes[q.ID].UnitPrice = 25

	views, err = svc.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		t.Fatalf("cached view failed: %v", err)
	}
	if views[0].Summary.TotalAmount != 20 {
		t.Fatalf("expected cache hit to serve memoized total 20, got %v", views[0].Summary.TotalAmount)
	}

	// The update event clears the memo; the next reload recomputes.
	err = bus.PublishSync(ctx, events.QuoteUpdated{
		BaseEvent: events.NewBaseEvent(),
		QuoteID:   q.ID,
		FactoryID: factoryID,
	})
	if err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}
	if viewCache.clears == 0 {
		t.Fatal("quote update did not invalidate the view cache")
	}

	views, err = svc.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		t.Fatalf("reloaded view failed: %v", err)
	}
	if views[0].Summary.TotalAmount != 50 {
		t.Fatalf("expected recomputed total 50 after edit, got %v", views[0].Summary.TotalAmount)
	}
}

func TestMetadataUpsertInvalidatesMemoizedView(t *testing.T) {
	ctx := context.Background()
	factoryID := uuid.New()
	store := newFakeQuoteStore()
	store.add(quoteAt(factoryID, "R-1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	factories := &fakeFactories{factories: []aggregation.FactoryInfo{{ID: factoryID, Name: "Fábrica Sul"}}}
	svc := New(newFakeMetadataStore(), store, store, factories, logger.New("test"))
	viewCache := newFakeCache()
	svc.SetCache(viewCache, time.Minute)

	views, err := svc.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		t.Fatalf("first view failed: %v", err)
	}
	if len(views) != 1 || len(views[0].Imports) != 1 {
		t.Fatalf("unexpected initial view: %+v", views)
	}
	bucketID := views[0].Imports[0].ID

	name := "Importação Março"
	if err := svc.UpsertImportMetadata(ctx, factoryID, bucketID, repository.UpsertParams{ImportName: &name}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	views, err = svc.GetAggregatedView(ctx, aggregation.Filters{}, aggregation.SortFlags{})
	if err != nil {
		t.Fatalf("reloaded view failed: %v", err)
	}
	if views[0].Imports[0].ImportName != "Importação Março" {
		t.Fatalf("overlay not visible after upsert: %+v", views[0].Imports[0])
	}
}
