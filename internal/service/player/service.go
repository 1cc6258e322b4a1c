package player

import (
	"context"
	"sort"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/session"
	"github.com/streamnest/vod-catalog/pkg/api"
	"go-micro.dev/v4/logger"
)

type Service struct {
	Sessions Sessions
	Catalog  Catalog
	Database Database
}

// Open starts (or restarts) the playback session of a client.
func (s *Service) Open(ctx context.Context, req *api.OpenRequest, resp *api.OpenResponse) error {
	status, err := s.Sessions.Open(ctx, req.ClientID, req.TitleID)
	if err != nil {
		logger.Errorf("Open session on '%s' failed: %s", req.TitleID, err)
		return err
	}
	resp.Status = toStatus(status)
	return nil
}

// PlayEpisode switches the session to a specific episode.
func (s *Service) PlayEpisode(ctx context.Context, req *api.PlayEpisodeRequest, resp *api.StatusResponse) error {
	status, err := s.Sessions.PlayEpisode(ctx, req.ClientID, req.Season, req.Episode)
	if err != nil {
		logger.Errorf("Play episode (%d, %d) failed: %s", req.Season, req.Episode, err)
		return err
	}
	resp.Status = toStatus(status)
	return nil
}

// SelectSource swaps the active stream variant.
func (s *Service) SelectSource(ctx context.Context, req *api.SelectSourceRequest, resp *api.StatusResponse) error {
	status, err := s.Sessions.SelectSource(ctx, req.ClientID, req.URL)
	if err != nil {
		logger.Errorf("Select source failed: %s", err)
		return err
	}
	resp.Status = toStatus(status)
	return nil
}

// Progress feeds one player time-update tick into the session.
func (s *Service) Progress(ctx context.Context, req *api.ProgressRequest, resp *api.Empty) error {
	return s.Sessions.Progress(ctx, req.ClientID, req.Time, req.Duration)
}

// Ended handles playback end, scheduling auto-advance when possible.
func (s *Service) Ended(ctx context.Context, req *api.EndedRequest, resp *api.StatusResponse) error {
	status, err := s.Sessions.Ended(ctx, req.ClientID)
	if err != nil {
		return err
	}
	resp.Status = toStatus(status)
	return nil
}

// MediaError records a playback failure reported by the client.
func (s *Service) MediaError(ctx context.Context, req *api.MediaErrorRequest, resp *api.Empty) error {
	s.Sessions.MediaError(req.ClientID, req.Message)
	return nil
}

// Status returns the current view of a session.
func (s *Service) Status(ctx context.Context, req *api.StatusRequest, resp *api.StatusResponse) error {
	status, err := s.Sessions.Status(req.ClientID)
	if err != nil {
		return err
	}
	resp.Status = toStatus(status)
	return nil
}

// Close drops the session.
func (s *Service) Close(ctx context.Context, req *api.CloseRequest, resp *api.Empty) error {
	s.Sessions.Close(req.ClientID)
	return nil
}

// continueWindow bounds the progress range counted as "in the middle of
// watching": barely started and almost finished titles are skipped.
const (
	continueMinPct = 2
	continueMaxPct = 98
)

// Continue returns titles with an in-progress playback record, most recent
// first, joined against the current snapshot.
func (s *Service) Continue(ctx context.Context, req *api.ContinueRequest, resp *api.ContinueResponse) error {
	records, err := s.Database.GetAllPlayback(ctx)
	if err != nil {
		logger.Errorf("Load playback records failed: %s", err)
		return err
	}

	inProgress := make([]*model.PlaybackRecord, 0, len(records))
	for _, rec := range records {
		if rec.ProgressPct > continueMinPct && rec.ProgressPct < continueMaxPct {
			inProgress = append(inProgress, rec)
		}
	}
	sort.SliceStable(inProgress, func(i, j int) bool {
		return inProgress[i].UpdatedAt.After(inProgress[j].UpdatedAt)
	})

	snap := s.Catalog.Snapshot()
	resp.Items = make([]api.ContinueItem, 0, len(inProgress))
	for _, rec := range inProgress {
		if req.Limit > 0 && len(resp.Items) >= req.Limit {
			break
		}
		title := snap.Lookup(rec.TitleID)
		if title == nil {
			continue
		}
		resp.Items = append(resp.Items, api.ContinueItem{
			Title: api.TitleBrief{
				ID:       title.ID,
				Title:    title.Title,
				Poster:   title.Poster,
				Year:     title.Year,
				Rating:   title.RatingValue,
				Category: string(title.Category),
				Quality:  title.Quality,
				IsSeries: title.IsSeries,
			},
			ProgressPct: rec.ProgressPct,
			Season:      rec.SeasonIndex,
			Episode:     rec.EpisodeIndex,
		})
	}
	return nil
}

func toStatus(status session.Status) api.SessionStatus {
	conv := api.SessionStatus{
		State:   status.State.String(),
		TitleID: status.TitleID,
		Season:  status.Pointer.Season,
		Episode: status.Pointer.Episode,
	}
	conv.Sources = make([]api.SourceInfo, 0, len(status.Sources))
	for _, src := range status.Sources {
		conv.Sources = append(conv.Sources, toSource(src))
	}
	if status.Source != nil {
		src := toSource(*status.Source)
		conv.Source = &src
	}
	if status.Next != nil {
		conv.Next = &api.EpisodePointer{Season: status.Next.Season, Episode: status.Next.Episode}
	}
	if status.Resume != nil {
		conv.Resume = &api.ResumeInfo{
			Time:     status.Resume.Time,
			Duration: status.Resume.Duration,
			Eligible: status.Resume.Eligible,
		}
	}
	return conv
}

func toSource(src model.Source) api.SourceInfo {
	return api.SourceInfo{
		URL:    src.URL,
		Label:  src.Label,
		Info:   src.Info,
		Server: src.Server,
	}
}
