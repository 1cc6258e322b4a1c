package catalog

import (
	"context"
	"errors"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/db"
	"github.com/streamnest/vod-catalog/internal/ratelimit"
	"github.com/streamnest/vod-catalog/pkg/api"
	"go-micro.dev/v4/logger"
)

type Service struct {
	Catalog  Catalog
	Database Database

	// RefreshLimiter guards the manual Refresh endpoint against hammering;
	// nil disables the limit
	RefreshLimiter *ratelimit.Interval
}

// Query runs one catalog query over the published snapshot.
func (s *Service) Query(ctx context.Context, req *api.QueryRequest, resp *api.QueryResponse) error {
	params := catalog.FromRequest(req)

	aux, err := s.loadAux(ctx, params)
	if err != nil {
		logger.Errorf("Load query context failed: %s", err)
		return err
	}

	result := catalog.Query(s.Catalog.Snapshot(), params, aux)
	resp.Items = make([]api.TitleBrief, 0, len(result.Items))
	for _, t := range result.Items {
		resp.Items = append(resp.Items, toBrief(t))
	}
	resp.Total = result.Total
	resp.HasMore = result.HasMore
	return nil
}

// loadAux fetches only the persisted state the pipeline will actually
// consult for the given parameters.
func (s *Service) loadAux(ctx context.Context, p catalog.Params) (catalog.Aux, error) {
	aux := catalog.Aux{}
	var err error

	if p.Preset == api.PresetWatchlist {
		if aux.Watchlist, err = s.Database.GetSet(ctx, db.SetWatchlist); err != nil {
			return aux, err
		}
	}
	if p.Preset == api.PresetLiked {
		if aux.Liked, err = s.Database.GetSet(ctx, db.SetLiked); err != nil {
			return aux, err
		}
	}
	if p.Preset == api.PresetContinue || p.HideWatched {
		records, err := s.Database.GetAllPlayback(ctx)
		if err != nil {
			return aux, err
		}
		aux.Progress = make(map[string]float64, len(records))
		for _, rec := range records {
			aux.Progress[rec.TitleID] = rec.ProgressPct
		}
	}
	return aux, nil
}

// Get returns the full projection of one title.
func (s *Service) Get(ctx context.Context, req *api.GetRequest, resp *api.GetResponse) error {
	title := s.Catalog.Snapshot().Lookup(req.ID)
	if title == nil {
		return errors.New("title not found")
	}

	detail := toDetail(title)
	resp.Title = &detail
	resp.NavType = "movie"
	if title.IsSeries {
		resp.NavType = "tv"
	}
	return nil
}

// Related returns titles near the given one.
func (s *Service) Related(ctx context.Context, req *api.RelatedRequest, resp *api.RelatedResponse) error {
	items := catalog.Related(s.Catalog.Snapshot(), req.ID, req.Limit)
	resp.Items = make([]api.TitleBrief, 0, len(items))
	for _, t := range items {
		resp.Items = append(resp.Items, toBrief(t))
	}
	return nil
}

// Refresh re-fetches the whole collection and swaps the snapshot. When the
// rate limit kicks in the current snapshot size is reported instead.
func (s *Service) Refresh(ctx context.Context, req *api.RefreshRequest, resp *api.RefreshResponse) error {
	if s.RefreshLimiter != nil && !s.RefreshLimiter.Allow() {
		resp.Titles = s.Catalog.Snapshot().Len()
		return nil
	}

	count, err := s.Catalog.Refresh(ctx)
	if err != nil {
		logger.Errorf("Refresh catalog failed: %s", err)
		return err
	}
	resp.Titles = count
	return nil
}
