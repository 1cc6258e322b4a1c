package session

import "github.com/streamnest/vod-catalog/internal/model"

// resumeEdge keeps resume offers out of the first and last seconds of a title.
const resumeEdge = 20.0

// Pointer addresses an episode within a title's season tree.
type Pointer struct {
	Season  int
	Episode int
}

// ResumeEligible reports whether a saved position is worth offering: at
// least resumeEdge seconds in and, when the duration is known, not within
// the last resumeEdge seconds.
func ResumeEligible(saved, duration float64) bool {
	if saved < resumeEdge {
		return false
	}
	return duration <= 0 || saved < duration-resumeEdge
}

// NextEpisode computes the episode following p: the next one in the same
// season, else the first episode of the next season, else none.
func NextEpisode(t *model.Title, p Pointer) (Pointer, bool) {
	episodes := t.Episodes(p.Season)
	if len(episodes) == 0 {
		return Pointer{}, false
	}
	if p.Episode+1 < len(episodes) {
		return Pointer{Season: p.Season, Episode: p.Episode + 1}, true
	}
	if len(t.Episodes(p.Season+1)) > 0 {
		return Pointer{Season: p.Season + 1, Episode: 0}, true
	}
	return Pointer{}, false
}

// ClampPointer forces a restored pointer into the valid bounds of t.
func ClampPointer(t *model.Title, p Pointer) Pointer {
	if len(t.Seasons) == 0 {
		return Pointer{}
	}
	if p.Season < 0 || p.Season >= len(t.Seasons) {
		p = Pointer{}
	}
	episodes := t.Episodes(p.Season)
	if p.Episode < 0 || p.Episode >= len(episodes) {
		p.Episode = 0
	}
	return p
}

// Progress clamps a time/duration pair into a 0..100 percentage.
func Progress(time, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	pct := time / duration * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
