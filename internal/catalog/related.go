package catalog

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/streamnest/vod-catalog/internal/model"
)

// DefaultRelatedLimit bounds a related-titles answer when the caller does
// not ask for a specific size.
const DefaultRelatedLimit = 12

// Related ranks titles near the given one: same category or overlapping
// genre, scored by genre overlap plus title-text similarity. Deterministic:
// score descending, input order on ties.
func Related(snap *Snapshot, id string, limit int) []*model.Title {
	base := snap.Lookup(id)
	if base == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	baseTitle := strings.ToLower(base.Title)

	type scored struct {
		title *model.Title
		score float64
	}

	titles := snap.Titles()
	candidates := make([]scored, 0, len(titles))
	for i := range titles {
		t := &titles[i]
		if t.ID == base.ID {
			continue
		}
		shared := sharedGenres(base.GenreList, t.GenreList)
		if t.Category != base.Category && shared == 0 {
			continue
		}
		score := float64(shared)
		score += matchr.JaroWinkler(baseTitle, strings.ToLower(t.Title), true)
		if t.Category == base.Category {
			score++
		}
		candidates = append(candidates, scored{title: t, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]*model.Title, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.title)
	}
	return result
}

func sharedGenres(a, b []string) int {
	count := 0
	for _, g := range a {
		if overlaps(b, []string{g}) {
			count++
		}
	}
	return count
}
