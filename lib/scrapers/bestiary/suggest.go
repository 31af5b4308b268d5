package bestiary

import (
	"slices"
	"strings"

	"bestiary-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

type Suggestion struct {
	Entry      Entry
	Similarity float64
}

// Suggest ranks entries by how close their slug is to the slug of query.
// At most limit suggestions are returned, limit <= 0 returns all of them.
func Suggest(query string, entries []Entry, limit int) []Suggestion {
	target := textutil.Slugify(query)

	suggestions := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		candidate := e.Path
		if candidate == "" {
			candidate = textutil.Slugify(e.Name)
		}
		suggestions = append(suggestions, Suggestion{
			Entry:      e,
			Similarity: matchr.JaroWinkler(target, candidate, false),
		})
	}

	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return strings.Compare(a.Entry.Name, b.Entry.Name)
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
