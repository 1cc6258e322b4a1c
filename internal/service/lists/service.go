package lists

import (
	"context"
	"fmt"
	"sort"

	"github.com/streamnest/vod-catalog/internal/db"
	"github.com/streamnest/vod-catalog/pkg/api"
	"go-micro.dev/v4/logger"
)

type Service struct {
	Database Database
}

func setName(list string) (string, error) {
	switch list {
	case db.SetWatchlist, db.SetLiked:
		return list, nil
	default:
		return "", fmt.Errorf("unknown list: %q", list)
	}
}

// Toggle adds or removes a title id in a persisted set and returns the
// updated membership.
func (s *Service) Toggle(ctx context.Context, req *api.ToggleRequest, resp *api.ToggleResponse) error {
	set, err := setName(req.List)
	if err != nil {
		return err
	}

	ids, err := s.Database.ToggleMember(ctx, set, req.ID, req.Add)
	if err != nil {
		logger.Errorf("Toggle %s membership failed: %s", set, err)
		return err
	}
	resp.IDs = ids
	return nil
}

// GetList returns the membership of a persisted set.
func (s *Service) GetList(ctx context.Context, req *api.GetListRequest, resp *api.GetListResponse) error {
	set, err := setName(req.List)
	if err != nil {
		return err
	}

	members, err := s.Database.GetSet(ctx, set)
	if err != nil {
		logger.Errorf("Load %s failed: %s", set, err)
		return err
	}
	resp.IDs = make([]string, 0, len(members))
	for id := range members {
		resp.IDs = append(resp.IDs, id)
	}
	sort.Strings(resp.IDs)
	return nil
}

// History returns the most-recent-first watch history.
func (s *Service) History(ctx context.Context, req *api.HistoryRequest, resp *api.HistoryResponse) error {
	entries, err := s.Database.GetHistory(ctx, req.Limit)
	if err != nil {
		logger.Errorf("Load history failed: %s", err)
		return err
	}
	resp.Items = make([]api.HistoryItem, 0, len(entries))
	for _, e := range entries {
		resp.Items = append(resp.Items, api.HistoryItem{
			TitleID:     e.TitleID,
			Type:        e.Type,
			Season:      e.SeasonIndex,
			Episode:     e.EpisodeIndex,
			ProgressPct: e.ProgressPct,
			UpdatedAt:   e.UpdatedAt.Unix(),
		})
	}
	return nil
}
