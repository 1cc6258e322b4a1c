package catalog

import (
	"strings"

	"github.com/streamnest/vod-catalog/internal/model"
)

// Snapshot is one immutable normalized collection. A re-fetch produces a new
// snapshot which atomically replaces the old one, never a partial merge.
type Snapshot struct {
	titles []model.Title
	byID   map[string]int
}

func NewSnapshot(titles []model.Title) *Snapshot {
	s := &Snapshot{
		titles: titles,
		byID:   make(map[string]int, len(titles)),
	}
	for i := range titles {
		if _, ok := s.byID[titles[i].ID]; !ok {
			s.byID[titles[i].ID] = i
		}
	}
	return s
}

// Titles returns the ordered collection. Callers must not mutate it.
func (s *Snapshot) Titles() []model.Title {
	return s.titles
}

func (s *Snapshot) Len() int {
	return len(s.titles)
}

// Lookup resolves a title by id: direct key lookup first, then a linear scan
// tolerant of legacy id shapes (surrounding space, case differences).
func (s *Snapshot) Lookup(id string) *model.Title {
	if i, ok := s.byID[id]; ok {
		return &s.titles[i]
	}
	want := strings.ToLower(strings.TrimSpace(id))
	if want == "" {
		return nil
	}
	for i := range s.titles {
		if strings.ToLower(strings.TrimSpace(s.titles[i].ID)) == want {
			return &s.titles[i]
		}
	}
	return nil
}
