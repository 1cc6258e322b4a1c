package normalize

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/streamnest/vod-catalog/internal/model"
)

const (
	defaultLabel  = "HD"
	defaultServer = "Server 1"
)

// Key priority for the polymorphic shapes backends use for link entries.
var (
	sourceURLKeys    = []string{"url", "link", "movie_link", "file", "video_url", "stream"}
	sourceLabelKeys  = []string{"quality", "label", "resolution"}
	sourceInfoKeys   = []string{"size", "info"}
	sourceServerKeys = []string{"server", "server_name"}
)

// ResolveSources turns a polymorphic "download links" value (textual JSON,
// bare URL, list or map of entries) into a deduplicated ordered source list.
// Total: any unparsable shape degrades to an empty list.
func ResolveSources(raw any) []model.Source {
	return dedupeSources(resolveSources(raw, true))
}

func resolveSources(raw any, allowParse bool) []model.Source {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if allowParse {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				if _, again := parsed.(string); !again {
					return resolveSources(parsed, false)
				}
			}
		}
		if isAbsoluteURL(s) {
			return []model.Source{{URL: s, Label: defaultLabel, Server: defaultServer}}
		}
		return nil
	case []any:
		var result []model.Source
		for _, entry := range v {
			if src, ok := resolveEntry(entry); ok {
				result = append(result, src)
			}
		}
		return result
	case map[string]any:
		// an object is either a single entry or a map of entries
		if src, ok := resolveEntry(v); ok {
			return []model.Source{src}
		}
		var result []model.Source
		for _, key := range sortedKeys(v) {
			if src, ok := resolveEntry(v[key]); ok {
				result = append(result, src)
			}
		}
		return result
	default:
		return nil
	}
}

// resolveEntry maps one entry (bare URL string or key/value object) to a
// source. Entries without a resolvable URL are dropped.
func resolveEntry(entry any) (model.Source, bool) {
	switch v := entry.(type) {
	case string:
		s := strings.TrimSpace(v)
		if !isAbsoluteURL(s) {
			return model.Source{}, false
		}
		return model.Source{URL: s, Label: defaultLabel, Server: defaultServer}, true
	case map[string]any:
		url := firstString(v, sourceURLKeys...)
		if url == "" {
			return model.Source{}, false
		}
		src := model.Source{
			URL:    url,
			Label:  firstString(v, sourceLabelKeys...),
			Info:   firstString(v, sourceInfoKeys...),
			Server: firstString(v, sourceServerKeys...),
		}
		if src.Label == "" {
			src.Label = defaultLabel
		}
		if src.Server == "" {
			src.Server = defaultServer
		}
		return src, true
	default:
		return model.Source{}, false
	}
}

// dedupeSources drops entries repeating an already seen URL, first wins.
func dedupeSources(list []model.Source) []model.Source {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	result := make([]model.Source, 0, len(list))
	for _, src := range list {
		if _, ok := seen[src.URL]; ok {
			continue
		}
		seen[src.URL] = struct{}{}
		result = append(result, src)
	}
	return result
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "//")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
