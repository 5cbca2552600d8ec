package db

import (
	"path/filepath"
	"testing"
)

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "quotes.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_MemoryDatabaseSharesSchema(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE ping (id INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM ping`).Scan(&n); err != nil {
		t.Fatalf("query ping: %v", err)
	}
}
