// Package catalog derives the browsable view of published items.
package catalog

import (
	"strings"

	"frustration-list/internal/model"
)

// Filter selects published items by category and free-text query.
// The zero value matches everything.
type Filter struct {
	Category model.Category
	Query    string
}

// MatchesCategory is true for "All" (or unset) and for an exact category match.
func (f Filter) MatchesCategory(item model.Item) bool {
	return f.Category == "" || f.Category == model.CategoryAll || item.Category == f.Category
}

// MatchesQuery is a case-insensitive substring match on the item text.
func (f Filter) MatchesQuery(item model.Item) bool {
	if f.Query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Text), strings.ToLower(f.Query))
}

func (f Filter) Matches(item model.Item) bool {
	return f.MatchesCategory(item) && f.MatchesQuery(item)
}

// Apply returns the items matching f, in their original order. items is not
// modified.
func Apply(items []model.Item, f Filter) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
