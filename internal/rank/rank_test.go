package rank

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiggak/waymenu/internal/catalog"
)

func app(id, label string) catalog.Entry {
	return catalog.Entry{ID: id, Label: label, MatchText: id, Action: catalog.DesktopApp{}}
}

func labels(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func alphaBeta() []catalog.Entry {
	return []catalog.Entry{app("a", "Alpha"), app("b", "Beta")}
}

func TestRank_OrderAndFilter(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		search  string
		want    []string
	}{
		{"alphabetical without history", nil, "", []string{"Alpha", "Beta"}},
		{"recent first", []string{"b"}, "", []string{"Beta", "Alpha"}},
		{"filter beats recency", []string{"b"}, "al", []string{"Alpha"}},
		{"case insensitive", nil, "BET", []string{"Beta"}},
		{"no match", []string{"a"}, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, labels(Rank(alphaBeta(), tt.history, tt.search)))
		})
	}
}

func TestOrder_RecentFollowHistoryOrder(t *testing.T) {
	entries := []catalog.Entry{
		app("term", "Terminal"),
		app("ff", "Firefox"),
		app("ed", "Editor"),
		app("calc", "Calculator"),
		app("files", "Files"),
	}
	history := []string{"files", "uninstalled", "term", "ff"}

	got := labels(Order(entries, history))
	require.Equal(t, []string{"Files", "Terminal", "Firefox", "Calculator", "Editor"}, got)
}

func TestOrder_CodepointOrderAndStableTies(t *testing.T) {
	entries := []catalog.Entry{
		app("1", "beta"),
		app("2", "Zed"),
		app("3", "Alpha"),
		app("4", "Alpha"),
		app("5", "Émile"),
	}

	got := Order(entries, nil)
	require.Equal(t, []string{"Alpha", "Alpha", "Zed", "beta", "Émile"}, labels(got))
	require.Equal(t, "3", got[0].ID)
	require.Equal(t, "4", got[1].ID)
}

func TestFilter_MatchText(t *testing.T) {
	entries := []catalog.Entry{
		{ID: "org.gnome.Nautilus.desktop", Label: "Files", MatchText: "nautilus"},
		{ID: "org.gnome.Terminal.desktop", Label: "Terminal", MatchText: "gnome-terminal"},
	}

	require.Equal(t, []string{"Files"}, labels(Filter(entries, "naut")))
	require.Equal(t, []string{"Terminal"}, labels(Filter(entries, "GNOME")))
}

func TestRanker_SearchDoesNotMutateBase(t *testing.T) {
	r := NewRanker(alphaBeta(), []string{"b"})

	require.Equal(t, []string{"Alpha"}, labels(r.Search("alp")))
	require.Equal(t, []string{"Beta", "Alpha"}, labels(r.Search("")))
	require.Equal(t, []string{"Beta", "Alpha"}, labels(r.Base()))
}

func TestOrderedRanker_KeepsGivenOrder(t *testing.T) {
	entries := []catalog.Entry{app("s", "Shutdown"), app("r", "Reboot"), app("l", "Lock")}
	r := NewOrderedRanker(entries)

	require.Equal(t, []string{"Shutdown", "Reboot", "Lock"}, labels(r.Base()))
	require.Equal(t, []string{"Shutdown", "Reboot"}, labels(r.Search("t")))

	entries[0] = app("x", "Changed")
	require.Equal(t, "Shutdown", r.Base()[0].Label, "ranker owns a copy")
}

func TestOrder_DoesNotModifyInput(t *testing.T) {
	entries := []catalog.Entry{app("z", "Zulu"), app("a", "Alpha")}
	Order(entries, []string{"a"})
	require.Equal(t, []string{"Zulu", "Alpha"}, labels(entries))
}

// randomCatalog builds n entries with repeated labels and a history made of
// a random subset of their ids plus ids not in the catalog.
func randomCatalog(rng *rand.Rand, n int) ([]catalog.Entry, []string) {
	words := []string{"alpha", "Beta", "gamma", "Delta", "beta", "Alpha"}
	entries := make([]catalog.Entry, n)
	for i := range entries {
		entries[i] = app(fmt.Sprintf("id%d", i), words[rng.Intn(len(words))]+fmt.Sprint(rng.Intn(3)))
	}

	var history []string
	for _, i := range rng.Perm(n) {
		if rng.Intn(3) == 0 {
			history = append(history, entries[i].ID)
		}
	}
	history = append(history, "not-installed")
	return entries, history
}

func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	searches := []string{"", "a", "ALP", "et", "2", "zz"}

	for iter := 0; iter < 200; iter++ {
		entries, history := randomCatalog(rng, rng.Intn(20))
		base := Order(entries, history)

		// every entry exactly once
		require.Len(t, base, len(entries))
		seen := map[string]int{}
		for _, e := range base {
			seen[e.ID]++
		}
		for _, e := range entries {
			require.Equal(t, 1, seen[e.ID], "entry %s", e.ID)
		}

		for _, search := range searches {
			filtered := Rank(entries, history, search)

			// filtered is a subsequence of base
			j := 0
			for _, e := range filtered {
				for j < len(base) && base[j].ID != e.ID {
					j++
				}
				require.Less(t, j, len(base), "search %q reordered entries", search)
				j++
			}

			for _, e := range filtered {
				require.True(t, Matches(e, search))
			}
		}
	}
}
