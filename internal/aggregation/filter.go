package aggregation

import (
	"sort"
	"strings"
	"time"
)

// SortFlags selects at most one of the two mutually exclusive view sorts.
// Callers flip the flags through ExclusiveSort; both set at once is a caller
// bug and resolves in favor of the order-date sort.
type SortFlags struct {
	ByRecent     bool
	ByDataPedido bool
}

// ExclusiveSort computes the next flag pair after the user toggles one of
// the sorts. Enabling one disables the other; toggling the active sort off
// returns the neutral (insertion-order) state.
func ExclusiveSort(current SortFlags, toggleRecent, toggleDataPedido bool) SortFlags {
	next := current
	if toggleRecent {
		next.ByRecent = !next.ByRecent
		if next.ByRecent {
			next.ByDataPedido = false
		}
	}
	if toggleDataPedido {
		next.ByDataPedido = !next.ByDataPedido
		if next.ByDataPedido {
			next.ByRecent = false
		}
	}
	return next
}

// ApplyFilters narrows the grouped view to the imports matching every active
// filter, prunes factories left with no imports, and applies the selected
// sort. Filters combine conjunctively; each individual filter is a
// case-insensitive substring match and an empty filter always passes.
// The input is not mutated.
func ApplyFilters(groups []FactoryGroup, f Filters, flags SortFlags) []FactoryGroup {
	out := make([]FactoryGroup, 0, len(groups))

	for _, g := range groups {
		kept := make([]Import, 0, len(g.Imports))
		for _, imp := range g.Imports {
			if matchesFilters(g.Factory, imp, f) {
				kept = append(kept, imp)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, FactoryGroup{Factory: g.Factory, Imports: kept})
	}

	switch {
	case flags.ByDataPedido:
		sortByDataPedido(out)
	case flags.ByRecent:
		sortByRecent(out)
	}
	return out
}

func matchesFilters(factory FactoryInfo, imp Import, f Filters) bool {
	if !containsFold(imp.DataPedido, f.DataPedido) {
		return false
	}
	if !containsFold(imp.LotePedido, f.LotePedido) {
		return false
	}
	return matchesBuscaGeral(factory, imp, f.BuscaGeral)
}

// matchesBuscaGeral is the free-text search: an import matches when the term
// appears in the factory name or location, the import's own naming fields, or
// any member product's ref, description or name. The field list is
// intentionally broad — quoteName and product display names are matched
// alongside refs so a term from any column visible on the screen finds its
// import.
func matchesBuscaGeral(factory FactoryInfo, imp Import, term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	if containsFold(factory.Name, term) ||
		containsFold(factory.Localizacao, term) ||
		containsFold(imp.ImportName, term) ||
		containsFold(imp.QuoteName, term) ||
		containsFold(imp.DataPedido, term) ||
		containsFold(imp.LotePedido, term) {
		return true
	}
	for _, p := range imp.Products {
		if containsFold(p.Ref, term) || containsFold(p.Description, term) || containsFold(p.Name, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortByRecent orders each factory's imports newest first, then factories by
// their newest import, newest first. The factory pass is intentional: the
// sort answers "what arrived last", so the most recently active factory
// surfaces at the top of the page rather than staying in insertion order
// with only its imports rearranged.
func sortByRecent(groups []FactoryGroup) {
	for i := range groups {
		imps := groups[i].Imports
		sort.SliceStable(imps, func(a, b int) bool {
			return imps[a].Datetime.After(imps[b].Datetime)
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return newestImport(groups[a]).After(newestImport(groups[b]))
	})
}

func newestImport(g FactoryGroup) time.Time {
	var newest time.Time
	for _, imp := range g.Imports {
		if imp.Datetime.After(newest) {
			newest = imp.Datetime
		}
	}
	return newest
}

// sortByDataPedido orders factories ascending by the earliest parsed order
// date across their imports. Imports with blank or malformed dates parse to
// the epoch and therefore pull their factory to the front.
func sortByDataPedido(groups []FactoryGroup) {
	sort.SliceStable(groups, func(a, b int) bool {
		return earliestOrderDate(groups[a]).Before(earliestOrderDate(groups[b]))
	})
}

func earliestOrderDate(g FactoryGroup) time.Time {
	earliest := time.Time{}
	for _, imp := range g.Imports {
		parsed := ParseOrderDate(imp.DataPedido)
		if earliest.IsZero() || parsed.Before(earliest) {
			earliest = parsed
		}
	}
	return earliest
}
