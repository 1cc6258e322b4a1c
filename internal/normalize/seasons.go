package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/streamnest/vod-catalog/internal/model"
)

var (
	episodeLinkFields = []string{"download_links", "qualities", "links"}
	episodeURLKeys    = []string{"url", "link", "file", "video_url", "stream"}
	episodeTitleKeys  = []string{"title", "name", "episode"}
	seasonNameKeys    = []string{"name", "season", "title"}
)

// BuildSeasons turns polymorphic "seasons" or flat "episodes" values of a
// record into an ordered season tree. Seasons without episodes and episodes
// without a resolvable URL are dropped.
func BuildSeasons(rec map[string]any) []model.Season {
	entries := entryList(rec["seasons"])
	if len(entries) == 0 {
		// flat episode lists behave as a one-season series
		episodes := buildEpisodes(rec["episodes"])
		if len(episodes) == 0 {
			return nil
		}
		return []model.Season{{Name: "Season 1", Episodes: episodes}}
	}

	result := make([]model.Season, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		episodes := buildEpisodes(firstPresent(m, "episodes", "list"))
		if len(episodes) == 0 {
			continue
		}
		name := firstString(m, seasonNameKeys...)
		if name == "" {
			name = fmt.Sprintf("Season %d", i+1)
		}
		result = append(result, model.Season{Name: name, Episodes: episodes})
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func buildEpisodes(raw any) []model.Episode {
	entries := entryList(raw)
	result := make([]model.Episode, 0, len(entries))
	for i, entry := range entries {
		if ep, ok := buildEpisode(entry, i+1); ok {
			result = append(result, ep)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func buildEpisode(entry any, index int) (model.Episode, bool) {
	switch v := entry.(type) {
	case string:
		s := strings.TrimSpace(v)
		if !isAbsoluteURL(s) {
			return model.Episode{}, false
		}
		return model.Episode{
			Title:   fmt.Sprintf("Episode %d", index),
			URL:     s,
			Sources: []model.Source{{URL: s, Label: defaultLabel, Server: defaultServer}},
		}, true
	case map[string]any:
		var sources []model.Source
		for _, field := range episodeLinkFields {
			if sources = ResolveSources(v[field]); len(sources) > 0 {
				break
			}
		}
		url := firstString(v, episodeURLKeys...)
		if url == "" && len(sources) > 0 {
			url = sources[0].URL
		}
		if url == "" {
			return model.Episode{}, false
		}
		if len(sources) == 0 {
			sources = []model.Source{{URL: url, Label: defaultLabel, Server: defaultServer}}
		}
		title := firstString(v, episodeTitleKeys...)
		if title == "" {
			title = fmt.Sprintf("Episode %d", index)
		}
		return model.Episode{Title: title, URL: url, Sources: sources}, true
	default:
		return model.Episode{}, false
	}
}

// entryList flattens the list-or-map-or-JSON-text union backends use for
// season and episode containers. Map entries come out in sorted key order.
func entryList(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case map[string]any:
		result := make([]any, 0, len(v))
		for _, key := range sortedKeys(v) {
			result = append(result, v[key])
		}
		return result
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &parsed); err != nil {
			return nil
		}
		if _, again := parsed.(string); again {
			return nil
		}
		return entryList(parsed)
	default:
		return nil
	}
}
