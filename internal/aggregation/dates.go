package aggregation

import (
	"strings"
	"time"
)

// Accepted order-date layouts: Brazilian day-first and ISO.
var orderDateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
}

// ParseOrderDate parses a free-text dataPedido value. Both DD/MM/YYYY and
// YYYY-MM-DD are accepted; anything else — including empty input — falls
// back to the Unix epoch. The fallback is silent on purpose: no validation
// exists elsewhere in the pipeline, so a malformed date sorts to the front
// of an ascending sort rather than erroring.
func ParseOrderDate(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Unix(0, 0).UTC()
	}

	for _, layout := range orderDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}
