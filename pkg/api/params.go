package api

import "strings"

// Deep-link query parameters are validated independently against their enum
// of legal values. Invalid text falls back to the default and reports ok=false
// so callers can log, never error.

func ParseTab(s string) (Tab, bool) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabHome, "":
		return TabHome, true
	case TabMovies:
		return TabMovies, true
	case TabTvShow:
		return TabTvShow, true
	case TabAnime:
		return TabAnime, true
	case TabAdult:
		return TabAdult, true
	default:
		return TabHome, false
	}
}

func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortSmart, "":
		return SortSmart, true
	case SortRating:
		return SortRating, true
	case SortNewest:
		return SortNewest, true
	case SortOldest:
		return SortOldest, true
	case SortAZ:
		return SortAZ, true
	default:
		return SortSmart, false
	}
}

func ParseQuickPreset(s string) (QuickPreset, bool) {
	switch QuickPreset(strings.ToLower(strings.TrimSpace(s))) {
	case PresetNone:
		return PresetNone, true
	case PresetTopRated:
		return PresetTopRated, true
	case PresetLatest:
		return PresetLatest, true
	case PresetWatchlist:
		return PresetWatchlist, true
	case PresetLiked:
		return PresetLiked, true
	case PresetContinue:
		return PresetContinue, true
	default:
		return PresetNone, false
	}
}
