package model

// Category is a coarse catalog bucket a title lands in
type Category string

const (
	CategoryMovies Category = "movies"
	CategoryTvShow Category = "tvshow"
	CategoryAnime  Category = "anime"
	CategoryAdult  Category = "adult"
)

// Source is one playable/downloadable stream variant of a title or episode
type Source struct {
	// URL is unique within its owning list
	URL string

	// Label is a quality name ("HD", "4K", "1080p", ...)
	Label string

	// Info carries size or other extra text
	Info string

	// Server is a display name of the hosting server
	Server string
}

// Episode is a single playable unit of a season
type Episode struct {
	Title string

	// URL is the primary playable url, always non-empty
	URL string

	Sources []Source
}

// Season groups episodes; a season is never emitted empty
type Season struct {
	Name     string
	Episodes []Episode
}

// Title is the canonical representation of one catalog entry.
// Created once per fetch cycle by the normalizer, immutable afterwards.
type Title struct {
	// ID is derived from the backend key, an embedded id field, or generated
	ID string

	Title       string
	Poster      string
	Year        string
	RatingValue float64
	Popularity  float64

	Category Category
	IsAdult  bool
	IsSeries bool

	GenreList    []string
	LanguageList []string
	CastList     []string

	Quality        string
	RuntimeMinutes float64
	Description    string
	Director       string
	Platform       string
	Country        string

	// SearchBlob is the precomputed lower-cased substrate for free-text search
	SearchBlob string

	// Sources hold stream variants for non-series titles
	Sources []Source

	// Seasons is empty for non-series titles
	Seasons []Season

	// Raw keeps the backend record the title was normalized from
	Raw map[string]any
}

// Episodes returns the episode list of season s, or nil when out of range.
func (t *Title) Episodes(s int) []Episode {
	if s < 0 || s >= len(t.Seasons) {
		return nil
	}
	return t.Seasons[s].Episodes
}

// Episode returns the episode at (s, e), or nil when out of range.
func (t *Title) Episode(s, e int) *Episode {
	episodes := t.Episodes(s)
	if e < 0 || e >= len(episodes) {
		return nil
	}
	return &episodes[e]
}
