package service

import "strings"

// Factory records imported from the legacy store carried the display name
// under several different keys. The chain is ordered data: first non-blank
// value wins, and a record with no usable name at all still renders.

var nameAliasChain = []string{"name", "nome", "razaoSocial", "fabrica"}

const fallbackName = "Fábrica sem nome"

// DisplayName resolves a factory's display name. The canonical name is
// preferred; blank names fall back through the legacy alias chain, then to a
// fixed placeholder so the UI never shows an empty header.
func DisplayName(name string, legacy map[string]string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	for _, key := range nameAliasChain {
		if trimmed := strings.TrimSpace(legacy[key]); trimmed != "" {
			return trimmed
		}
	}
	return fallbackName
}
