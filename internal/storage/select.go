package storage

import (
	"slices"

	"github.com/mcoot/playerbase/internal/model"
)

// Select filters, sorts and pages players in memory.
// Backends without a query language share it so listings behave identically.
// The input slice is not modified.
func Select(players []*model.Player, filter model.Filter, page model.Page) []*model.Player {
	matched := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if filter.Match(p) {
			matched = append(matched, p)
		}
	}

	slices.SortFunc(matched, page.Order.Compare)

	start := page.Offset()
	if start >= len(matched) {
		return []*model.Player{}
	}
	end := len(matched)
	if page.Size < end-start {
		end = start + page.Size
	}
	return matched[start:end]
}

// Count returns the number of players matching filter
func Count(players []*model.Player, filter model.Filter) int {
	n := 0
	for _, p := range players {
		if filter.Match(p) {
			n++
		}
	}
	return n
}
