package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one schema step. SQL holds an optional Down section followed by the Up section.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrationsDB applies every pending up migration on an open database.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		parsed, err := parseMigration(m)
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, parsed)
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(db, "sqlite3", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Infof("applied %d of %d migrations: %s", applied, len(ids), strings.Join(ids, ", "))

	return nil
}

func parseMigration(m Migration) (*migrate.Migration, error) {
	down, up, found := strings.Cut(m.SQL, upMarker)
	if !found {
		return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
	}

	if _, after, ok := strings.Cut(down, downMarker); ok {
		down = after
	}

	return &migrate.Migration{
		Id:   m.ID,
		Up:   []string{strings.TrimSpace(up)},
		Down: []string{strings.TrimSpace(down)},
	}, nil
}
