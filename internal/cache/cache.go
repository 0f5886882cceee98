// Package cache memoizes per-file blame records in SQLite so repeated
// analysis runs over the same history skip the expensive git blame
// calls.
package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"strata/internal/errors"
	"strata/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS blame_cache (
    commit_sha TEXT NOT NULL,
    path       TEXT NOT NULL,
    payload    BLOB NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (commit_sha, path)
);
`

// Cache stores opaque blame payloads keyed by (commit, path).
// Payloads are zstd-compressed; blame output for a commit is
// immutable, so entries never expire.
type Cache struct {
	db     *sql.DB
	path   string
	logger *logging.Logger
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// Status summarizes cache contents.
type Status struct {
	Path      string `json:"path"`
	Entries   int64  `json:"entries"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Open opens or creates the cache database at dbPath.
func Open(dbPath string, logger *logging.Logger) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.New(errors.CacheError, "failed to create cache directory", err)
	}

	existed := fileExists(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.CacheError, "failed to open cache database", err)
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.New(errors.CacheError, "failed to set pragma", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.New(errors.CacheError, "failed to initialize cache schema", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, errors.New(errors.CacheError, "failed to create zstd encoder", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, errors.New(errors.CacheError, "failed to create zstd decoder", err)
	}

	if !existed {
		logger.Debug("Created blame cache", map[string]interface{}{
			"path": dbPath,
		})
	}

	return &Cache{
		db:     db,
		path:   dbPath,
		logger: logger,
		enc:    enc,
		dec:    dec,
	}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.db.Close()
}

// Get retrieves the cached payload for a (commit, path) pair.
func (c *Cache) Get(commitSHA, path string) ([]byte, bool, error) {
	var compressed []byte
	err := c.db.QueryRow(`
		SELECT payload FROM blame_cache
		WHERE commit_sha = ? AND path = ?
	`, commitSHA, path).Scan(&compressed)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.New(errors.CacheError, "cache lookup failed", err)
	}

	payload, err := c.dec.DecodeAll(compressed, nil)
	if err != nil {
		// A corrupt entry is treated as a miss; the caller will
		// recompute and overwrite it
		c.logger.Warn("Discarding corrupt cache entry", map[string]interface{}{
			"commit": commitSHA,
			"path":   path,
		})
		return nil, false, nil
	}
	return payload, true, nil
}

// Put stores the payload for a (commit, path) pair.
func (c *Cache) Put(commitSHA, path string, payload []byte) error {
	compressed := c.enc.EncodeAll(payload, nil)

	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO blame_cache (commit_sha, path, payload, created_at)
		VALUES (?, ?, ?, ?)
	`, commitSHA, path, compressed, time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return errors.New(errors.CacheError, "failed to store cache entry", err)
	}
	return nil
}

// Status returns entry count and on-disk size.
func (c *Cache) Status() (*Status, error) {
	var entries int64
	if err := c.db.QueryRow("SELECT COUNT(*) FROM blame_cache").Scan(&entries); err != nil {
		return nil, errors.New(errors.CacheError, "failed to count cache entries", err)
	}

	size := int64(0)
	if info, err := os.Stat(c.path); err == nil {
		size = info.Size()
	}

	return &Status{
		Path:      c.path,
		Entries:   entries,
		SizeBytes: size,
	}, nil
}

// Clear removes all cache entries and compacts the database.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM blame_cache"); err != nil {
		return errors.New(errors.CacheError, "failed to clear cache", err)
	}
	if _, err := c.db.Exec("VACUUM"); err != nil {
		return errors.New(errors.CacheError, "failed to compact cache", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
