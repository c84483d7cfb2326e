// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/buzzblog/backend/internal/db"
)

// New returns a migrated in-memory SQLite database holding the tables of the
// given services. It is closed when the test ends.
func New(t testing.TB, services ...string) *db.DB {
	t.Helper()

	d, err := db.Open(sqlite.Open(":memory:"), "error")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = d.Close() })

	for _, service := range services {
		if err := d.Migrate(service); err != nil {
			t.Fatalf("migrate %s: %v", service, err)
		}
	}
	return d
}
