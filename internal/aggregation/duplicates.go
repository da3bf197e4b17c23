package aggregation

import (
	"sort"
	"strings"
)

// Scope selects the comparison universe for duplicate detection.
type Scope string

const (
	// ScopeFactory compares references within each factory independently.
	ScopeFactory Scope = "factory"
	// ScopeGlobal compares references across all factories at once.
	ScopeGlobal Scope = "global"
)

// RefNormalization decides how a raw product reference becomes a comparison
// key. Matching is case-sensitive by default; the relaxed policy exists for
// callers that want "ref-001" and "REF-001" flagged as the same reference.
type RefNormalization int

const (
	// NormalizeTrim trims surrounding whitespace only.
	NormalizeTrim RefNormalization = iota
	// NormalizeTrimFold trims whitespace and folds case.
	NormalizeTrimFold
)

// Key applies the policy to a raw reference. An empty result means the
// reference does not participate in detection.
func (n RefNormalization) Key(ref string) string {
	key := strings.TrimSpace(ref)
	if n == NormalizeTrimFold {
		key = strings.ToLower(key)
	}
	return key
}

// DetectDuplicates scans the grouped view for product references appearing
// more than once within the given scope. Imports flagged as replacements are
// excluded entirely: a replacement order repeats references on purpose, and
// counting them would drown the report in intentional repeats. Blank
// references never match each other. Records are ordered by reference key;
// occurrences keep the traversal order of the input groups.
func DetectDuplicates(scope Scope, groups []FactoryGroup, policy RefNormalization) []DuplicateRecord {
	if scope == ScopeFactory {
		var records []DuplicateRecord
		for _, g := range groups {
			records = append(records, collectDuplicates([]FactoryGroup{g}, policy)...)
		}
		return records
	}
	return collectDuplicates(groups, policy)
}

func collectDuplicates(groups []FactoryGroup, policy RefNormalization) []DuplicateRecord {
	occurrences := make(map[string][]DuplicateOccurrence)

	for _, g := range groups {
		for _, imp := range g.Imports {
			if imp.IsReplacement {
				continue
			}
			for _, p := range imp.Products {
				key := policy.Key(p.Ref)
				if key == "" {
					continue
				}
				occurrences[key] = append(occurrences[key], DuplicateOccurrence{
					FactoryID:   g.Factory.ID,
					FactoryName: g.Factory.Name,
					ImportID:    imp.ID,
					ImportName:  imp.ImportName,
					DataPedido:  imp.DataPedido,
					LotePedido:  imp.LotePedido,
					Product:     p,
				})
			}
		}
	}

	keys := make([]string, 0, len(occurrences))
	for key, occs := range occurrences {
		if len(occs) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	records := make([]DuplicateRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, DuplicateRecord{
			Reference:   key,
			Occurrences: occurrences[key],
		})
	}
	return records
}
