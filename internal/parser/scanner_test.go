package parser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"codegraph/internal/config"
	"codegraph/internal/logging"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func scanTree(t *testing.T, root string, cfg *config.Config) []*FileRecord {
	t.Helper()
	s := NewScanner(cfg, newTestLogger())
	records, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	return records
}

func TestScanFindsCppFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "core/Engine.h", "class Engine {};\n")
	write(t, root, "core/Engine.cpp", "#include \"Engine.h\"\n")
	write(t, root, "README.md", "not code\n")

	records := scanTree(t, root, config.DefaultConfig())

	if len(records) != 2 {
		t.Fatalf("Scan found %d records, want 2", len(records))
	}
	// filepath.Walk is lexical: .cpp sorts before .h.
	if filepath.Base(records[0].Path) != "Engine.cpp" || filepath.Base(records[1].Path) != "Engine.h" {
		t.Errorf("walk order = %s, %s; want Engine.cpp, Engine.h", records[0].Path, records[1].Path)
	}

	cpp := records[0]
	if len(cpp.Includes) != 1 || cpp.Includes[0] != "Engine.h" {
		t.Errorf("Includes = %v, want [Engine.h]", cpp.Includes)
	}
}

func TestScanSkipsIgnoredAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/a.cpp", "int main() {\n}\n")
	write(t, root, "build/gen.cpp", "// generated\n")
	write(t, root, ".git/hook.cpp", "// not code\n")
	write(t, root, config.ConfigDirName+"/stale.cpp", "// cache dir\n")

	records := scanTree(t, root, config.DefaultConfig())

	if len(records) != 1 || filepath.Base(records[0].Path) != "a.cpp" {
		t.Errorf("records = %v, want only src/a.cpp", records)
	}
}

func TestScanSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "big.cpp", "// 0123456789012345678901234567890123456789\n")
	write(t, root, "small.cpp", "//\n")

	cfg := config.DefaultConfig()
	cfg.Scan.MaxFileSizeBytes = 10

	records := scanTree(t, root, cfg)
	if len(records) != 1 || filepath.Base(records[0].Path) != "small.cpp" {
		t.Errorf("records = %v, want only small.cpp", records)
	}
}

func TestScanRootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.cpp", "//\n")

	s := NewScanner(config.DefaultConfig(), newTestLogger())
	if _, err := s.Scan(context.Background(), filepath.Join(root, "a.cpp")); err == nil {
		t.Error("Scan(file) = nil error, want failure")
	}
	if _, err := s.Scan(context.Background(), filepath.Join(root, "missing")); err == nil {
		t.Error("Scan(missing) = nil error, want failure")
	}
}

// memCache is an in-memory Cache for scanner tests.
type memCache struct {
	records map[string]*FileRecord
	hashes  map[string]string
	stores  int
}

func newMemCache() *memCache {
	return &memCache{
		records: make(map[string]*FileRecord),
		hashes:  make(map[string]string),
	}
}

func (c *memCache) Lookup(path, hash string) (*FileRecord, bool) {
	if c.hashes[path] != hash {
		return nil, false
	}
	return c.records[path], true
}

func (c *memCache) Store(rec *FileRecord, hash string) error {
	c.records[rec.Path] = rec
	c.hashes[rec.Path] = hash
	c.stores++
	return nil
}

func TestScanUsesCache(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.cpp", "#include \"A.h\"\n")

	cache := newMemCache()
	s := NewScanner(config.DefaultConfig(), newTestLogger())
	s.SetCache(cache)

	if _, err := s.Scan(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	if cache.stores != 1 {
		t.Fatalf("stores = %d after first scan, want 1", cache.stores)
	}

	// Second scan of unchanged content must hit the cache, not re-store.
	records, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if cache.stores != 1 {
		t.Errorf("stores = %d after second scan, want 1", cache.stores)
	}
	if len(records) != 1 || len(records[0].Includes) != 1 {
		t.Errorf("cached record = %+v, want original content", records[0])
	}
}

func TestScanModifiedFileMissesCache(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.cpp", "#include \"A.h\"\n")

	cache := newMemCache()
	s := NewScanner(config.DefaultConfig(), newTestLogger())
	s.SetCache(cache)

	if _, err := s.Scan(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	write(t, root, "a.cpp", "#include \"B.h\"\n")
	records, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if cache.stores != 2 {
		t.Errorf("stores = %d after modification, want 2", cache.stores)
	}
	if records[0].Includes[0] != "B.h" {
		t.Errorf("Includes = %v, want fresh parse [B.h]", records[0].Includes)
	}
}
