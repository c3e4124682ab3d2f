package cache

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id            INTEGER PRIMARY KEY,
		title         TEXT    NOT NULL,
		price         INTEGER NOT NULL,
		property_type TEXT    NOT NULL DEFAULT '',
		city          TEXT    NOT NULL DEFAULT '',
		governate     TEXT    NOT NULL DEFAULT '',
		raw_json      TEXT    NOT NULL,
		is_favorite   INTEGER NOT NULL DEFAULT 0,
		cached_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_favorite ON listings(is_favorite)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
