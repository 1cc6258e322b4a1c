package normalize

import (
	"testing"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeasonsFlatEpisodes(t *testing.T) {
	// a flat "episodes" field synthesizes a single Season 1
	rec := map[string]any{
		"episodes": []any{
			map[string]any{"title": "Pilot", "url": "http://e/1"},
			map[string]any{"url": "http://e/2"},
		},
	}

	seasons := BuildSeasons(rec)
	require.Len(t, seasons, 1)
	assert.Equal(t, "Season 1", seasons[0].Name)
	require.Len(t, seasons[0].Episodes, 2)
	assert.Equal(t, "Pilot", seasons[0].Episodes[0].Title)
	assert.Equal(t, "Episode 2", seasons[0].Episodes[1].Title)
}

func TestBuildSeasons(t *testing.T) {
	rec := map[string]any{
		"seasons": []any{
			map[string]any{
				"name": "Season One",
				"episodes": []any{
					map[string]any{"url": "http://s1/e1"},
					map[string]any{"note": "no url here"},
				},
			},
			map[string]any{
				// all episodes unresolvable: season dropped entirely
				"episodes": []any{map[string]any{"title": "broken"}},
			},
			map[string]any{
				"list": []any{
					map[string]any{
						"title":          "Finale",
						"download_links": `[{"url":"http://s3/e1","quality":"1080p"}]`,
					},
				},
			},
		},
	}

	seasons := BuildSeasons(rec)
	require.Len(t, seasons, 2)

	assert.Equal(t, "Season One", seasons[0].Name)
	require.Len(t, seasons[0].Episodes, 1)
	assert.Equal(t, "http://s1/e1", seasons[0].Episodes[0].URL)

	// episode URL falls back to the first resolved source
	require.Len(t, seasons[1].Episodes, 1)
	assert.Equal(t, "http://s3/e1", seasons[1].Episodes[0].URL)
	assert.Equal(t, "1080p", seasons[1].Episodes[0].Sources[0].Label)
}

func TestBuildSeasonsInvariants(t *testing.T) {
	recs := []map[string]any{
		{"seasons": "garbage"},
		{"seasons": []any{}, "episodes": []any{"http://e/1", "junk"}},
		{"seasons": map[string]any{
			"s1": map[string]any{"episodes": []any{"http://m/1"}},
			"s2": map[string]any{"episodes": []any{}},
		}},
	}

	for i, rec := range recs {
		for _, season := range BuildSeasons(rec) {
			assert.NotEmpty(t, season.Episodes, "Test %d: empty season emitted", i)
			for _, ep := range season.Episodes {
				assert.NotEmpty(t, ep.URL, "Test %d: episode without url", i)
			}
		}
	}
}

func TestBuildSeasonsEpisodeSources(t *testing.T) {
	rec := map[string]any{
		"seasons": []any{
			map[string]any{
				"episodes": []any{
					map[string]any{
						"url":       "http://direct/1",
						"qualities": []any{map[string]any{"url": "http://q/1", "quality": "4K"}},
					},
				},
			},
		},
	}

	seasons := BuildSeasons(rec)
	require.Len(t, seasons, 1)
	ep := seasons[0].Episodes[0]
	// direct field wins as primary URL, resolved list stays as sources
	assert.Equal(t, "http://direct/1", ep.URL)
	assert.Equal(t, []model.Source{{URL: "http://q/1", Label: "4K", Server: "Server 1"}}, ep.Sources)
}
