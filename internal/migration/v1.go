package migration

import (
	"context"

	"go-micro.dev/v4/logger"
)

// Early deployments stored playback records keyed by "mov:"-prefixed ids
// while the catalog itself used bare ids, so resume lookups missed. V1
// rewrites the legacy keys in place.
func (m *Migrator) migrateDatabaseV0ToV1(ctx context.Context) error {
	records, err := m.Database.GetAllPlayback(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		id, legacy := CanonicalTitleID(rec.TitleID)
		if !legacy {
			continue
		}
		oldID := rec.TitleID
		rec.TitleID = id
		if err = m.Database.PutPlayback(ctx, rec); err != nil {
			logger.Warnf("Rewrite playback record '%s' failed: %s", oldID, err)
			continue
		}
		if err = m.Database.DeletePlayback(ctx, oldID); err != nil {
			logger.Warnf("Drop legacy playback record '%s' failed: %s", oldID, err)
		}
	}
	return nil
}
