package migration

import (
	"context"
	"fmt"

	"github.com/streamnest/vod-catalog/internal/db"
	"go-micro.dev/v4/logger"
)

// Version is the current database schema version.
const Version = 1

const versionKey = "schema-version"

type migratorFn func(ctx context.Context) error

type Migrator struct {
	Database *db.Database
}

// Run brings the database schema up to Version, applying migrations one
// step at a time and persisting the version after each step.
func (m *Migrator) Run(ctx context.Context) error {
	current := 0
	if err := m.Database.Read(ctx, versionKey, &current); err != nil {
		return fmt.Errorf("get schema version failed: %w", err)
	}

	if current == Version {
		return nil
	}
	if current > Version {
		return fmt.Errorf("cannot migrate database from future version: %d", current)
	}

	logger.Warnf("Database schema version changed, migrate")
	migrations := m.getMigrations()
	for ; current < Version; current++ {
		if err := migrations[current](ctx); err != nil {
			return fmt.Errorf("from %d to %d: %w", current, current+1, err)
		}
		if err := m.Database.Write(ctx, versionKey, current+1); err != nil {
			return fmt.Errorf("update schema version failed: %w", err)
		}
	}
	return nil
}

func (m *Migrator) getMigrations() []migratorFn {
	return []migratorFn{
		m.migrateDatabaseV0ToV1,
	}
}
