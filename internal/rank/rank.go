// Package rank orders and filters catalog entries for display.
//
// Ranking runs in two stages. Order computes a base order once per catalog
// and history: recently launched entries first, in history order, then the
// rest alphabetically by label. Filter then drops entries that do not match
// the search text without reordering the survivors, so typing only ever
// shrinks the visible list.
package rank

import (
	"slices"
	"strings"

	"github.com/jiggak/waymenu/internal/catalog"
)

// Order returns the base display order for entries given the launch history
// (most-recent-first ids). entries is not modified.
func Order(entries []catalog.Entry, history []string) []catalog.Entry {
	position := make(map[string]int, len(history))
	for i, id := range history {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}

	recent := make([]catalog.Entry, 0, len(history))
	others := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := position[e.ID]; ok {
			recent = append(recent, e)
		} else {
			others = append(others, e)
		}
	}

	slices.SortStableFunc(recent, func(a, b catalog.Entry) int {
		return position[a.ID] - position[b.ID]
	})
	slices.SortStableFunc(others, func(a, b catalog.Entry) int {
		return strings.Compare(a.Label, b.Label)
	})

	return append(recent, others...)
}

// Matches reports whether search is a case-insensitive substring of the
// entry label or match text. The empty search matches everything.
func Matches(e catalog.Entry, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Label), needle) ||
		strings.Contains(strings.ToLower(e.MatchText), needle)
}

// Filter returns the entries of ordered that match search, in the same
// relative order.
func Filter(ordered []catalog.Entry, search string) []catalog.Entry {
	if search == "" {
		return slices.Clone(ordered)
	}
	result := make([]catalog.Entry, 0, len(ordered))
	for _, e := range ordered {
		if Matches(e, search) {
			result = append(result, e)
		}
	}
	return result
}

// Rank is Order followed by Filter.
func Rank(entries []catalog.Entry, history []string, search string) []catalog.Entry {
	return Filter(Order(entries, history), search)
}

// Ranker caches the base order of one catalog and history pair so that each
// keystroke only pays for the filter pass.
type Ranker struct {
	base []catalog.Entry
}

// NewRanker computes the base order for entries and history.
func NewRanker(entries []catalog.Entry, history []string) *Ranker {
	return &Ranker{base: Order(entries, history)}
}

// NewOrderedRanker keeps entries in the order given. Menu definitions use it:
// their order is chosen by the user.
func NewOrderedRanker(entries []catalog.Entry) *Ranker {
	return &Ranker{base: slices.Clone(entries)}
}

// Base returns the unfiltered order.
func (r *Ranker) Base() []catalog.Entry {
	return slices.Clone(r.base)
}

// Search returns the base order filtered by search.
func (r *Ranker) Search(search string) []catalog.Entry {
	return Filter(r.base, search)
}
