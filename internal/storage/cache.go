package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"codegraph/internal/parser"
)

// ScanCache serves cached File Records keyed by path and content hash. It
// implements the scanner's cache contract; a hash mismatch is a miss, so a
// modified file is always re-parsed.
type ScanCache struct {
	db     *DB
	hits   int
	misses int
}

// NewScanCache creates a scan cache over an open database.
func NewScanCache(db *DB) *ScanCache {
	return &ScanCache{db: db}
}

// Lookup returns the cached record for path if the stored hash matches.
func (c *ScanCache) Lookup(path, hash string) (*parser.FileRecord, bool) {
	var (
		storedHash string
		isHeader   int
		lineCount  int
		includes   string
		classes    string
		structs    string
		functions  string
		globalVars string
	)

	row := c.db.conn.QueryRow(
		`SELECT hash, is_header, line_count, includes, classes, structs, functions, global_vars
		 FROM files WHERE path = ?`, path)
	if err := row.Scan(&storedHash, &isHeader, &lineCount, &includes, &classes, &structs, &functions, &globalVars); err != nil {
		if err != sql.ErrNoRows {
			c.db.logger.Debug("Cache lookup failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		c.misses++
		return nil, false
	}

	if storedHash != hash {
		c.misses++
		return nil, false
	}

	rec := &parser.FileRecord{
		Path:      path,
		IsHeader:  isHeader != 0,
		LineCount: lineCount,
	}
	cols := []struct {
		raw string
		dst *[]string
	}{
		{includes, &rec.Includes},
		{classes, &rec.Classes},
		{structs, &rec.Structs},
		{functions, &rec.Functions},
		{globalVars, &rec.GlobalVars},
	}
	for _, col := range cols {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			c.misses++
			return nil, false
		}
	}

	c.hits++
	return rec, true
}

// Store upserts a freshly parsed record under its content hash.
func (c *ScanCache) Store(rec *parser.FileRecord, hash string) error {
	includes, err := json.Marshal(rec.Includes)
	if err != nil {
		return err
	}
	classes, err := json.Marshal(rec.Classes)
	if err != nil {
		return err
	}
	structs, err := json.Marshal(rec.Structs)
	if err != nil {
		return err
	}
	functions, err := json.Marshal(rec.Functions)
	if err != nil {
		return err
	}
	globalVars, err := json.Marshal(rec.GlobalVars)
	if err != nil {
		return err
	}

	_, err = c.db.conn.Exec(
		`INSERT INTO files (path, hash, is_header, line_count, includes, classes, structs, functions, global_vars, scanned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			is_header = excluded.is_header,
			line_count = excluded.line_count,
			includes = excluded.includes,
			classes = excluded.classes,
			structs = excluded.structs,
			functions = excluded.functions,
			global_vars = excluded.global_vars,
			scanned_at = excluded.scanned_at`,
		rec.Path, hash, boolToInt(rec.IsHeader), rec.LineCount,
		string(includes), string(classes), string(structs), string(functions), string(globalVars),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Hits returns the number of cache hits since creation.
func (c *ScanCache) Hits() int {
	return c.hits
}

// Misses returns the number of cache misses since creation.
func (c *ScanCache) Misses() int {
	return c.misses
}

// BeginRun records the start of a scan and returns the run id.
func (c *ScanCache) BeginRun(root string) (string, error) {
	id := uuid.New().String()
	_, err := c.db.conn.Exec(
		`INSERT INTO scan_runs (id, root, started_at) VALUES (?, ?, ?)`,
		id, root, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinishRun records scan completion with final counters.
func (c *ScanCache) FinishRun(id string, filesScanned int) error {
	_, err := c.db.conn.Exec(
		`UPDATE scan_runs SET finished_at = ?, files_scanned = ?, cache_hits = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), filesScanned, c.hits, id,
	)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
