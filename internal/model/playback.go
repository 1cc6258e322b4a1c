package model

import "time"

// HistoryLimit caps the persisted watch history
const HistoryLimit = 60

// PlaybackRecord is the single "where the user left off" record per title
type PlaybackRecord struct {
	TitleID      string    `bson:"_id"`
	SeasonIndex  int       `bson:"season"`
	EpisodeIndex int       `bson:"episode"`
	Time         float64   `bson:"time"`
	Duration     float64   `bson:"duration"`
	ProgressPct  float64   `bson:"progress"`
	UpdatedAt    time.Time `bson:"updatedat"`
}

// HistoryEntry is one element of the bounded recently-watched list
type HistoryEntry struct {
	TitleID      string    `bson:"titleid"`
	Type         string    `bson:"type"` // "movie" or "series"
	SeasonIndex  int       `bson:"season"`
	EpisodeIndex int       `bson:"episode"`
	Time         float64   `bson:"time"`
	Duration     float64   `bson:"duration"`
	ProgressPct  float64   `bson:"progress"`
	UpdatedAt    time.Time `bson:"updatedat"`
}

// BoundHistory inserts entry at the front of items, evicting any older entry
// with the same title id and trimming the list to max elements.
func BoundHistory(items []HistoryEntry, entry HistoryEntry, max int) []HistoryEntry {
	result := make([]HistoryEntry, 0, len(items)+1)
	result = append(result, entry)
	for _, item := range items {
		if item.TitleID == entry.TitleID {
			continue
		}
		result = append(result, item)
	}
	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result
}
