package catalog

import (
	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/pkg/api"
)

func toBrief(t *model.Title) api.TitleBrief {
	return api.TitleBrief{
		ID:       t.ID,
		Title:    t.Title,
		Poster:   t.Poster,
		Year:     t.Year,
		Rating:   t.RatingValue,
		Category: string(t.Category),
		Quality:  t.Quality,
		IsSeries: t.IsSeries,
	}
}

func toDetail(t *model.Title) api.TitleDetail {
	detail := api.TitleDetail{
		TitleBrief:     toBrief(t),
		Description:    t.Description,
		Director:       t.Director,
		Platform:       t.Platform,
		Country:        t.Country,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         t.GenreList,
		Languages:      t.LanguageList,
		Cast:           t.CastList,
		Sources:        toSources(t.Sources),
	}
	for _, season := range t.Seasons {
		conv := api.SeasonInfo{Name: season.Name}
		for _, ep := range season.Episodes {
			conv.Episodes = append(conv.Episodes, api.EpisodeInfo{
				Title:   ep.Title,
				URL:     ep.URL,
				Sources: toSources(ep.Sources),
			})
		}
		detail.Seasons = append(detail.Seasons, conv)
	}
	return detail
}

func toSources(sources []model.Source) []api.SourceInfo {
	result := make([]api.SourceInfo, 0, len(sources))
	for _, src := range sources {
		result = append(result, api.SourceInfo{
			URL:    src.URL,
			Label:  src.Label,
			Info:   src.Info,
			Server: src.Server,
		})
	}
	return result
}
