package storage

import (
	"io"
	"reflect"
	"testing"

	"codegraph/internal/logging"
	"codegraph/internal/parser"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), newTestLogger())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestScanCacheStoreAndLookup(t *testing.T) {
	cache := NewScanCache(openTestDB(t))

	rec := &parser.FileRecord{
		Path:      "/src/core/Engine.cpp",
		Includes:  []string{"Engine.h", "vector"},
		Classes:   []string{"Engine"},
		Functions: []string{"main"},
		LineCount: 120,
	}
	if err := cache.Store(rec, "hash-1"); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	got, ok := cache.Lookup(rec.Path, "hash-1")
	if !ok {
		t.Fatal("Lookup() miss for stored record")
	}
	if got.Path != rec.Path || got.LineCount != 120 {
		t.Errorf("Lookup() = %+v, want stored record", got)
	}
	if !reflect.DeepEqual(got.Includes, rec.Includes) {
		t.Errorf("Includes = %v, want %v", got.Includes, rec.Includes)
	}
	if !reflect.DeepEqual(got.Classes, rec.Classes) {
		t.Errorf("Classes = %v, want %v", got.Classes, rec.Classes)
	}
	if cache.Hits() != 1 {
		t.Errorf("Hits() = %d, want 1", cache.Hits())
	}
}

func TestScanCacheHashMismatchIsMiss(t *testing.T) {
	cache := NewScanCache(openTestDB(t))

	rec := &parser.FileRecord{Path: "/src/a.cpp"}
	if err := cache.Store(rec, "hash-1"); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Lookup(rec.Path, "hash-2"); ok {
		t.Error("Lookup() hit on mismatched hash, want miss")
	}
	if cache.Misses() != 1 {
		t.Errorf("Misses() = %d, want 1", cache.Misses())
	}
}

func TestScanCacheUnknownPathIsMiss(t *testing.T) {
	cache := NewScanCache(openTestDB(t))
	if _, ok := cache.Lookup("/src/never-seen.cpp", "h"); ok {
		t.Error("Lookup() hit on unknown path, want miss")
	}
}

func TestScanCacheStoreOverwrites(t *testing.T) {
	cache := NewScanCache(openTestDB(t))

	rec := &parser.FileRecord{Path: "/src/a.cpp", Includes: []string{"A.h"}}
	if err := cache.Store(rec, "hash-1"); err != nil {
		t.Fatal(err)
	}

	rec.Includes = []string{"B.h"}
	if err := cache.Store(rec, "hash-2"); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Lookup(rec.Path, "hash-1"); ok {
		t.Error("old hash still hits after overwrite")
	}
	got, ok := cache.Lookup(rec.Path, "hash-2")
	if !ok || got.Includes[0] != "B.h" {
		t.Errorf("Lookup() after overwrite = %+v, %v; want updated record", got, ok)
	}
}

func TestScanRunBookkeeping(t *testing.T) {
	db := openTestDB(t)
	cache := NewScanCache(db)

	id, err := cache.BeginRun("/src")
	if err != nil {
		t.Fatalf("BeginRun() error: %v", err)
	}
	if id == "" {
		t.Fatal("BeginRun() returned empty id")
	}

	if err := cache.FinishRun(id, 42); err != nil {
		t.Fatalf("FinishRun() error: %v", err)
	}

	var filesScanned int
	var finishedAt string
	row := db.conn.QueryRow(`SELECT files_scanned, finished_at FROM scan_runs WHERE id = ?`, id)
	if err := row.Scan(&filesScanned, &finishedAt); err != nil {
		t.Fatalf("querying scan run: %v", err)
	}
	if filesScanned != 42 {
		t.Errorf("files_scanned = %d, want 42", filesScanned)
	}
	if finishedAt == "" {
		t.Error("finished_at not set")
	}
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	root := t.TempDir()

	db, err := Open(root, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	cache := NewScanCache(db)
	if err := cache.Store(&parser.FileRecord{Path: "/src/a.cpp"}, "h"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	// Reopening must keep existing rows.
	db, err = Open(root, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, ok := NewScanCache(db).Lookup("/src/a.cpp", "h"); !ok {
		t.Error("record lost after reopen")
	}
}
