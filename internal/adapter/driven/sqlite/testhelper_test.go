package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"testing"
)

// setupTestDB creates a named shared in-memory SQLite database for testing.
// Writer and reader connections share the same in-memory database via cache=shared.
// A unique name derived from t.Name() ensures isolation between parallel tests.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Percent-encode the test name so it cannot be misinterpreted as query
	// parameters in the "file:%s?..." DSN.
	safeName := url.PathEscape(t.Name())
	// WAL mode is not applicable to in-memory databases; omit journal_mode pragma.
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		safeName,
	)

	db, err := open(context.Background(), dsn, safeName)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if _, err := RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// clearProjects removes the seeded projects so tests control the table.
func clearProjects(t *testing.T, db *DB) {
	t.Helper()
	if _, err := db.Writer.ExecContext(context.Background(), `DELETE FROM projects`); err != nil {
		t.Fatalf("clear projects: %v", err)
	}
}

func insertProject(t *testing.T, db *DB, title, description, link string) {
	t.Helper()
	const query = `INSERT INTO projects (title, description, url) VALUES (?, ?, ?)`
	if _, err := db.Writer.ExecContext(context.Background(), query, title, description, link); err != nil {
		t.Fatalf("insert project %s: %v", title, err)
	}
}
