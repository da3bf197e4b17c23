package aggregation

import (
	"sort"
	"time"
)

// bucketKeyLayout truncates a creation instant to the minute, yielding a
// 16-character ISO-8601 prefix. Quotes created within the same wall-clock
// minute for the same factory merge into one import — a coarse batching
// heuristic standing in for a submission id, which the data model does not
// have. Isolated here so a real importBatchId could replace it later.
const bucketKeyLayout = "2006-01-02T15:04"

// BucketKey returns the import bucket key for a creation instant.
func BucketKey(createdAt time.Time) string {
	return createdAt.UTC().Format(bucketKeyLayout)
}

// GroupQuotesByImport buckets one factory's quotes into imports by their
// minute-truncated creation timestamp and merges the persisted metadata
// overlay found under the same bucket key. Quotes lacking a creation
// timestamp are dropped from grouping; the count of dropped quotes is
// returned so the caller can log it. Empty buckets are never emitted, and
// the output order is stable: imports ascend by bucket instant, products
// within an import ascend by creation instant.
func GroupQuotesByImport(quotes []Product, metadata map[string]ImportMetadata) ([]Import, int) {
	buckets := make(map[string][]Product)
	dropped := 0

	for _, q := range quotes {
		if q.CreatedAt == nil {
			dropped++
			continue
		}
		key := BucketKey(*q.CreatedAt)
		buckets[key] = append(buckets[key], q)
	}

	imports := make([]Import, 0, len(buckets))
	for key, members := range buckets {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CreatedAt.Before(*members[j].CreatedAt)
		})

		instant, _ := time.Parse(bucketKeyLayout, key)
		imp := Import{
			ID:        key,
			FactoryID: members[0].FactoryID,
			Datetime:  instant.UTC(),
			Date:      instant.Format("02/01/2006"),
			Time:      instant.Format("15:04"),
			Count:     len(members),
			Products:  members,
		}

		for _, p := range members {
			imp.TotalValue += EffectiveAmount(p)
		}

		applyMetadataOverlay(&imp, metadata[key])
		imports = append(imports, imp)
	}

	sort.Slice(imports, func(i, j int) bool {
		return imports[i].ID < imports[j].ID
	})
	return imports, dropped
}

// applyMetadataOverlay merges the persisted overlay into a freshly computed
// bucket. The overlay wins for every field it sets; quoteName falls back to
// the first member quote's own quoteName when the overlay lacks one.
func applyMetadataOverlay(imp *Import, meta ImportMetadata) {
	imp.ImportName = meta.ImportName
	imp.DataPedido = meta.DataPedido
	imp.LotePedido = meta.LotePedido
	imp.IsReplacement = meta.IsReplacement

	imp.QuoteName = meta.QuoteName
	if imp.QuoteName == "" && len(imp.Products) > 0 {
		imp.QuoteName = imp.Products[0].QuoteName
	}
}
