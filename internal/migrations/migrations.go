package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
)

//go:embed 001_kv_entries.sql
var mig001 string

// All returns the schema migrations of the SQLite key-value engine.
func All() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_kv_entries.sql",
			SQL: mig001,
		},
	}
}

// RunMigrationsDB applies the schema migrations on an open database.
func RunMigrationsDB(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, All())
}
