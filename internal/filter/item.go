// Package filter selects stored radar items for `radar items`.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/dyluth/radar/pkg/itemstore"
)

// Criteria are ANDed together; zero values match everything.
type Criteria struct {
	SinceTimestampMs int64  // Unix ms, 0 = no lower bound
	UntilTimestampMs int64  // Unix ms, 0 = no upper bound
	QuadrantGlob     string // Glob on the quadrant name, case-insensitive
	Ring             string // Exact ring name, case-insensitive
	NewOnly          bool
}

// Matches returns true if the item satisfies every active criterion.
func (c *Criteria) Matches(item *itemstore.Item) bool {
	if c.SinceTimestampMs > 0 && item.CreatedAtMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && item.CreatedAtMs > c.UntilTimestampMs {
		return false
	}

	if c.QuadrantGlob != "" {
		matched, err := filepath.Match(strings.ToLower(c.QuadrantGlob), strings.ToLower(item.Quadrant))
		if err != nil || !matched {
			return false
		}
	}

	if c.Ring != "" && !strings.EqualFold(c.Ring, item.Ring) {
		return false
	}

	if c.NewOnly && !item.IsNew {
		return false
	}

	return true
}

// HasFilters returns true if any criterion is active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 ||
		c.UntilTimestampMs > 0 ||
		c.QuadrantGlob != "" ||
		c.Ring != "" ||
		c.NewOnly
}

// Apply returns the items that match, preserving order.
func (c *Criteria) Apply(items []*itemstore.Item) []*itemstore.Item {
	if !c.HasFilters() {
		return items
	}
	var out []*itemstore.Item
	for _, item := range items {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
