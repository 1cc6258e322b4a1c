// Package api holds the wire types of the vod-catalog RPC surface.
package api

// Tab selects the top-level catalog bucket.
type Tab string

const (
	TabHome   Tab = "home"
	TabMovies Tab = "movies"
	TabTvShow Tab = "tvshow"
	TabAnime  Tab = "anime"
	TabAdult  Tab = "adult"
)

// SortMode orders query results.
type SortMode string

const (
	SortSmart  SortMode = "smart"
	SortRating SortMode = "rating"
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortAZ     SortMode = "az"
)

// QuickPreset is a named filter shortcut scoped to the active tab.
type QuickPreset string

const (
	PresetNone      QuickPreset = ""
	PresetTopRated  QuickPreset = "top-rated"
	PresetLatest    QuickPreset = "latest"
	PresetWatchlist QuickPreset = "watchlist"
	PresetLiked     QuickPreset = "liked"
	PresetContinue  QuickPreset = "continue"
)

// QueryRequest carries one catalog query. String-typed fields mirror deep-link
// query parameters: invalid values fall back to defaults instead of erroring.
type QueryRequest struct {
	Tab    string `json:"tab"`
	Term   string `json:"term"`
	Sort   string `json:"sort"`
	Preset string `json:"preset"`

	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
	Qualities []string `json:"qualities"`

	YearMin   string `json:"year_min"`
	YearMax   string `json:"year_max"`
	RatingMin string `json:"rating_min"`

	HDOnly      bool `json:"hd_only"`
	HideWatched bool `json:"hide_watched"`
	AgeGate     bool `json:"age_gate"`

	// Pages is the grown visible-count cursor, in pages of 24
	Pages int `json:"pages"`
}

// TitleBrief is the grid cell projection of a title.
type TitleBrief struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Poster   string  `json:"poster"`
	Year     string  `json:"year"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
	Quality  string  `json:"quality"`
	IsSeries bool    `json:"is_series"`
}

type QueryResponse struct {
	Items   []TitleBrief `json:"items"`
	Total   int          `json:"total"`
	HasMore bool         `json:"has_more"`
}

// SourceInfo is one playable stream variant.
type SourceInfo struct {
	URL    string `json:"url"`
	Label  string `json:"label"`
	Info   string `json:"info,omitempty"`
	Server string `json:"server,omitempty"`
}

type EpisodeInfo struct {
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Sources []SourceInfo `json:"sources"`
}

type SeasonInfo struct {
	Name     string        `json:"name"`
	Episodes []EpisodeInfo `json:"episodes"`
}

// TitleDetail is the full projection of a title.
type TitleDetail struct {
	TitleBrief
	Description    string       `json:"description"`
	Director       string       `json:"director"`
	Platform       string       `json:"platform"`
	Country        string       `json:"country"`
	RuntimeMinutes float64      `json:"runtime_minutes"`
	Genres         []string     `json:"genres"`
	Languages      []string     `json:"languages"`
	Cast           []string     `json:"cast"`
	Sources        []SourceInfo `json:"sources"`
	Seasons        []SeasonInfo `json:"seasons"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type GetResponse struct {
	Title *TitleDetail `json:"title"`

	// NavType is the routing hint for the player entry point: "movie" or "tv"
	NavType string `json:"nav_type"`
}

type RelatedRequest struct {
	ID    string `json:"id"`
	Limit int    `json:"limit"`
}

type RelatedResponse struct {
	Items []TitleBrief `json:"items"`
}

type RefreshRequest struct{}

type RefreshResponse struct {
	Titles int `json:"titles"`
}

// EpisodePointer addresses an episode within a title's season tree.
type EpisodePointer struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// ResumeInfo describes the saved position offered on session open.
type ResumeInfo struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	Eligible bool    `json:"eligible"`
}

type OpenRequest struct {
	ClientID string `json:"client_id"`
	TitleID  string `json:"title_id"`
}

type SessionStatus struct {
	State   string          `json:"state"`
	TitleID string          `json:"title_id"`
	Season  int             `json:"season"`
	Episode int             `json:"episode"`
	Source  *SourceInfo     `json:"source,omitempty"`
	Sources []SourceInfo    `json:"sources"`
	Next    *EpisodePointer `json:"next,omitempty"`
	Resume  *ResumeInfo     `json:"resume,omitempty"`
}

type OpenResponse struct {
	Status SessionStatus `json:"status"`
}

type PlayEpisodeRequest struct {
	ClientID string `json:"client_id"`
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
}

type SelectSourceRequest struct {
	ClientID string `json:"client_id"`
	URL      string `json:"url"`
}

type ProgressRequest struct {
	ClientID string  `json:"client_id"`
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
}

type EndedRequest struct {
	ClientID string `json:"client_id"`
}

type CloseRequest struct {
	ClientID string `json:"client_id"`
}

// MediaErrorRequest reports a client-side playback failure on the active
// source. It never changes session state.
type MediaErrorRequest struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

type StatusRequest struct {
	ClientID string `json:"client_id"`
}

// Empty is the response of operations with nothing to report.
type Empty struct{}

type StatusResponse struct {
	Status SessionStatus `json:"status"`
}

// ContinueRequest asks for titles with an in-progress playback record.
type ContinueRequest struct {
	Limit int `json:"limit"`
}

type ContinueItem struct {
	Title       TitleBrief `json:"title"`
	ProgressPct float64    `json:"progress_pct"`
	Season      int        `json:"season"`
	Episode     int        `json:"episode"`
}

type ContinueResponse struct {
	Items []ContinueItem `json:"items"`
}

// ToggleRequest flips membership of a title id in a persisted set.
type ToggleRequest struct {
	List string `json:"list"` // "watchlist" or "liked"
	ID   string `json:"id"`
	Add  bool   `json:"add"`
}

type ToggleResponse struct {
	IDs []string `json:"ids"`
}

type GetListRequest struct {
	List string `json:"list"`
}

type GetListResponse struct {
	IDs []string `json:"ids"`
}

type HistoryRequest struct {
	Limit int `json:"limit"`
}

type HistoryItem struct {
	TitleID     string  `json:"title_id"`
	Type        string  `json:"type"`
	Season      int     `json:"season"`
	Episode     int     `json:"episode"`
	ProgressPct float64 `json:"progress_pct"`
	UpdatedAt   int64   `json:"updated_at"`
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}
