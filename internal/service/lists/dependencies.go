package lists

import (
	"context"

	"github.com/streamnest/vod-catalog/internal/model"
)

type Database interface {
	ToggleMember(ctx context.Context, set, id string, add bool) ([]string, error)
	GetSet(ctx context.Context, set string) (map[string]struct{}, error)
	GetHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error)
}
