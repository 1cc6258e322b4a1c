package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/pkg/api"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed grid page used by the visible-count cursor.
const PageSize = 24

// Params is one fully validated catalog query. Callers build it from wire
// input through FromRequest.
type Params struct {
	Tab    api.Tab
	Term   string
	Sort   api.SortMode
	Preset api.QuickPreset

	Genres    []string
	Languages []string
	Qualities []string

	YearMin   int
	YearMax   int
	RatingMin float64

	HDOnly      bool
	HideWatched bool
	AgeGate     bool

	Pages int
}

// Aux carries the persisted state some pipeline stages consult.
type Aux struct {
	Watchlist map[string]struct{}
	Liked     map[string]struct{}

	// Progress holds progressPct by title id from playback records
	Progress map[string]float64

	// CurrentYear lets tests pin the "latest" preset boundary; 0 = now
	CurrentYear int
}

// Result is the ordered, windowed outcome of one query.
type Result struct {
	Items   []*model.Title
	Total   int
	HasMore bool
}

const yearFloor, yearCeil = 1900, 2100

// FromRequest validates wire parameters, falling back to defaults on invalid
// enum text and clamping malformed numeric bounds instead of rejecting them.
func FromRequest(req *api.QueryRequest) Params {
	tab, _ := api.ParseTab(req.Tab)
	sortMode, _ := api.ParseSortMode(req.Sort)
	preset, _ := api.ParseQuickPreset(req.Preset)

	p := Params{
		Tab:         tab,
		Term:        strings.ToLower(strings.TrimSpace(req.Term)),
		Sort:        sortMode,
		Preset:      preset,
		Genres:      req.Genres,
		Languages:   req.Languages,
		Qualities:   req.Qualities,
		YearMin:     clampYear(req.YearMin, yearFloor),
		YearMax:     clampYear(req.YearMax, yearCeil),
		RatingMin:   clampRating(req.RatingMin),
		HDOnly:      req.HDOnly,
		HideWatched: req.HideWatched,
		AgeGate:     req.AgeGate,
		Pages:       req.Pages,
	}
	if p.Pages < 1 {
		p.Pages = 1
	}
	return p
}

func clampYear(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	if n < yearFloor {
		return yearFloor
	}
	if n > yearCeil {
		return yearCeil
	}
	return n
}

func clampRating(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// Query runs the strictly ordered pipeline: tab filter, quick preset,
// advanced filters, free-text search, sort, pagination. Deterministic for a
// given (snapshot, params, aux) triple.
func Query(snap *Snapshot, p Params, aux Aux) Result {
	titles := snap.Titles()
	items := make([]*model.Title, 0, len(titles))
	for i := range titles {
		if matchTab(&titles[i], p) {
			items = append(items, &titles[i])
		}
	}

	items = applyPreset(items, p, aux)
	items = applyAdvanced(items, p, aux)
	items = applySearch(items, p.Term)
	sortTitles(items, p.Sort)

	total := len(items)
	visible := p.Pages * PageSize
	if visible > total {
		visible = total
	}
	return Result{
		Items:   items[:visible],
		Total:   total,
		HasMore: visible < total,
	}
}

func matchTab(t *model.Title, p Params) bool {
	switch p.Tab {
	case api.TabMovies:
		return t.Category == model.CategoryMovies && !t.IsAdult
	case api.TabTvShow:
		return t.Category == model.CategoryTvShow
	case api.TabAnime:
		return t.Category == model.CategoryAnime
	case api.TabAdult:
		return t.IsAdult || t.Category == model.CategoryAdult
	default: // home
		if t.IsAdult || t.Category == model.CategoryAdult {
			return p.AgeGate
		}
		return true
	}
}

func applyPreset(items []*model.Title, p Params, aux Aux) []*model.Title {
	var keep func(*model.Title) bool

	switch p.Preset {
	case api.PresetTopRated:
		keep = func(t *model.Title) bool { return t.RatingValue >= 7.5 }
	case api.PresetLatest:
		boundary := aux.CurrentYear
		if boundary == 0 {
			boundary = currentYear()
		}
		boundary--
		keep = func(t *model.Title) bool { return yearOf(t) >= boundary }
	case api.PresetWatchlist:
		keep = func(t *model.Title) bool {
			_, ok := aux.Watchlist[t.ID]
			return ok
		}
	case api.PresetLiked:
		keep = func(t *model.Title) bool {
			_, ok := aux.Liked[t.ID]
			return ok
		}
	case api.PresetContinue:
		keep = func(t *model.Title) bool {
			pct, ok := aux.Progress[t.ID]
			return ok && pct > 2 && pct < 98
		}
	default:
		return items
	}

	return filter(items, keep)
}

var hdExpr = regexp.MustCompile(`(?i)hd|4k|uhd|1080|2160`)

func applyAdvanced(items []*model.Title, p Params, aux Aux) []*model.Title {
	items = filter(items, func(t *model.Title) bool {
		y := yearOf(t)
		return y >= p.YearMin && y <= p.YearMax
	})
	if p.RatingMin > 0 {
		items = filter(items, func(t *model.Title) bool { return t.RatingValue >= p.RatingMin })
	}
	if p.HDOnly {
		items = filter(items, func(t *model.Title) bool { return hdExpr.MatchString(t.Quality) })
	}
	if len(p.Genres) > 0 {
		items = filter(items, func(t *model.Title) bool { return overlaps(t.GenreList, p.Genres) })
	}
	if len(p.Languages) > 0 {
		items = filter(items, func(t *model.Title) bool { return overlaps(t.LanguageList, p.Languages) })
	}
	if len(p.Qualities) > 0 {
		items = filter(items, func(t *model.Title) bool { return overlaps([]string{t.Quality}, p.Qualities) })
	}
	if p.HideWatched {
		items = filter(items, func(t *model.Title) bool { return aux.Progress[t.ID] < 95 })
	}
	return items
}

func applySearch(items []*model.Title, term string) []*model.Title {
	if term == "" {
		return items
	}
	return filter(items, func(t *model.Title) bool {
		return strings.Contains(t.SearchBlob, term)
	})
}

func sortTitles(items []*model.Title, mode api.SortMode) {
	switch mode {
	case api.SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].RatingValue > items[j].RatingValue
		})
	case api.SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return yearOf(items[i]) > yearOf(items[j])
		})
	case api.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return yearOf(items[i]) < yearOf(items[j])
		})
	case api.SortAZ:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Title, items[j].Title) < 0
		})
	default: // smart
		sort.SliceStable(items, func(i, j int) bool {
			return smartScore(items[i]) > smartScore(items[j])
		})
	}
}

// smartScore is a tunable composite, not an ordering contract. The
// coefficients are preserved as-is for reproducibility.
func smartScore(t *model.Title) float64 {
	return t.RatingValue*3 + t.Popularity*0.001 + float64(yearOf(t))*0.3
}

func filter(items []*model.Title, keep func(*model.Title) bool) []*model.Title {
	result := items[:0:0]
	for _, t := range items {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// overlaps reports whether any member of have matches any member of want,
// compared case-insensitively after trimming.
func overlaps(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, h := range have {
			if strings.ToLower(strings.TrimSpace(h)) == w {
				return true
			}
		}
	}
	return false
}

func yearOf(t *model.Title) int {
	n, _ := strconv.Atoi(t.Year)
	return n
}

func currentYear() int {
	return time.Now().Year()
}
