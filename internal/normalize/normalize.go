package normalize

import (
	"strings"

	"github.com/google/uuid"
	"github.com/streamnest/vod-catalog/internal/model"
)

// PosterPlaceholder is served when a record carries no usable poster URL.
const PosterPlaceholder = "https://via.placeholder.com/300x450?text=No+Poster"

var (
	recordURLKeys  = []string{"url", "link", "movie_link", "file", "video_url", "stream"}
	recordIDKeys   = []string{"id", "_id", "key"}
	categoryFields = []string{"category", "type", "content_type"}
	adultFields    = []string{"adult", "is_adult", "isAdult"}
)

// searchFields is the fixed ordered set of raw fields folded into the
// search blob, ahead of the normalized list fields.
var searchFields = []string{
	"title", "original_title", "name", "description",
	"director", "platform", "country", "category", "type",
}

// Normalize consumes one backend record plus its key and produces the
// canonical title. Pure and total: every field has an explicit default,
// malformed shapes never escape this boundary.
func Normalize(rec map[string]any, key string) model.Title {
	if rec == nil {
		rec = map[string]any{}
	}

	id := strings.TrimSpace(key)
	if id == "" {
		id = firstString(rec, recordIDKeys...)
	}
	if id == "" {
		id = uuid.NewString()
	}

	categoryText := strings.ToLower(firstString(rec, categoryFields...))
	adult := Bool(firstPresent(rec, adultFields...))
	seasons := BuildSeasons(rec)

	t := model.Title{
		ID:             id,
		Title:          firstString(rec, "title", "name"),
		Poster:         firstString(rec, "poster", "image", "thumbnail"),
		Year:           Year(firstPresent(rec, "year", "release_year", "release_date")),
		RatingValue:    Number(firstPresent(rec, "rating", "rating_value", "imdb_rating", "vote_average")),
		Popularity:     Number(firstPresent(rec, "popularity", "views")),
		Category:       deriveCategory(categoryText, adult),
		IsAdult:        adult,
		IsSeries:       len(seasons) > 0 || isSeriesText(categoryText),
		GenreList:      StringList(firstPresent(rec, "genre", "genres")),
		LanguageList:   StringList(firstPresent(rec, "language", "languages", "spoken_languages")),
		CastList:       StringList(firstPresent(rec, "cast", "actors")),
		Quality:        firstString(rec, "quality"),
		RuntimeMinutes: Runtime(firstPresent(rec, "runtime", "duration")),
		Description:    firstString(rec, "description", "overview", "plot"),
		Director:       firstString(rec, "director"),
		Platform:       firstString(rec, "platform"),
		Country:        firstString(rec, "country"),
		Seasons:        seasons,
		Raw:            rec,
	}
	if t.Poster == "" {
		t.Poster = PosterPlaceholder
	}

	t.Sources = resolveTitleSources(rec)
	t.SearchBlob = buildSearchBlob(rec, &t)
	return t
}

// deriveCategory applies the category rule in order, first match wins.
func deriveCategory(categoryText string, adult bool) model.Category {
	switch {
	case strings.Contains(categoryText, "anime"):
		return model.CategoryAnime
	case isSeriesText(categoryText):
		return model.CategoryTvShow
	case adult:
		return model.CategoryAdult
	default:
		return model.CategoryMovies
	}
}

func isSeriesText(categoryText string) bool {
	return strings.Contains(categoryText, "series") || strings.Contains(categoryText, "tv")
}

// resolveTitleSources resolves the record's link list and prepends any
// direct URL field as source index 0, deduplicated across the insertion.
func resolveTitleSources(rec map[string]any) []model.Source {
	resolved := ResolveSources(firstPresent(rec, "download_links", "qualities", "links"))

	direct := firstString(rec, recordURLKeys...)
	if direct == "" {
		return resolved
	}
	head := model.Source{
		URL:    direct,
		Label:  firstString(rec, sourceLabelKeys...),
		Server: defaultServer,
	}
	if head.Label == "" {
		head.Label = defaultLabel
	}
	return dedupeSources(append([]model.Source{head}, resolved...))
}

// buildSearchBlob concatenates every searchable field once, lower-cased.
// The query engine never re-inspects raw fields.
func buildSearchBlob(rec map[string]any, t *model.Title) string {
	parts := make([]string, 0, len(searchFields)+3)
	for _, field := range searchFields {
		if s := String(rec[field]); s != "" {
			parts = append(parts, s)
		}
	}
	for _, list := range [][]string{t.GenreList, t.CastList, t.LanguageList} {
		if len(list) > 0 {
			parts = append(parts, strings.Join(list, " "))
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
