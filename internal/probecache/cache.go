package probecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/handiism/album-catalog/internal/audio"
)

const (
	kindBitrate = "bitrate"
	kindGenre   = "genre"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `
CREATE TABLE IF NOT EXISTS probes (
	path     TEXT    NOT NULL,
	kind     TEXT    NOT NULL,
	size     INTEGER NOT NULL,
	mod_time INTEGER NOT NULL,
	value    TEXT    NOT NULL,
	PRIMARY KEY (path, kind)
)`

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Cache is an audio.Prober that remembers the results of another Prober in
// a SQLite database.
//
// Entries are keyed by file path and validated against the file's size and
// modification time, so an edited file is probed again. Only successful
// probes are stored; a file that failed once is retried on the next run.
// Database errors never fail a probe: the cache is bypassed and the wrapped
// Prober answers.
type Cache struct {
	db     *sql.DB
	path   string
	prober audio.Prober
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Open opens or creates the cache database at path in front of prober.
func Open(path string, prober audio.Prober, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Cache{db: db, path: path, prober: prober, logger: logger}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Stats returns the number of hits and misses so far.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Bitrate implements audio.Prober.
func (c *Cache) Bitrate(path string) (int, error) {
	if value, ok := c.lookup(path, kindBitrate); ok {
		if kbps, err := strconv.Atoi(value); err == nil {
			return kbps, nil
		}
	}

	kbps, err := c.prober.Bitrate(path)
	if err != nil {
		return 0, err
	}
	c.store(path, kindBitrate, strconv.Itoa(kbps))
	return kbps, nil
}

// Genre implements audio.Prober.
func (c *Cache) Genre(path string) (string, error) {
	if value, ok := c.lookup(path, kindGenre); ok {
		return value, nil
	}

	genre, err := c.prober.Genre(path)
	if err != nil {
		return "", err
	}
	c.store(path, kindGenre, genre)
	return genre, nil
}

func (c *Cache) lookup(path, kind string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		c.misses.Add(1)
		return "", false
	}

	ctx := context.Background()
	var (
		size    int64
		modTime int64
		value   string
	)
	err = retryOnBusy(ctx, func() error {
		return c.db.QueryRowContext(ctx,
			"SELECT size, mod_time, value FROM probes WHERE path = ? AND kind = ?",
			path, kind,
		).Scan(&size, &modTime, &value)
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Debug("probe cache lookup failed", zap.String("path", path), zap.Error(err))
		}
		c.misses.Add(1)
		return "", false
	}

	if size != info.Size() || modTime != info.ModTime().UnixNano() {
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return value, true
}

func (c *Cache) store(path, kind, value string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	ctx := context.Background()
	err = retryOnBusy(ctx, func() error {
		_, err := c.db.ExecContext(ctx, `
INSERT INTO probes (path, kind, size, mod_time, value) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path, kind) DO UPDATE SET size = excluded.size, mod_time = excluded.mod_time, value = excluded.value`,
			path, kind, info.Size(), info.ModTime().UnixNano(), value)
		return err
	})
	if err != nil {
		c.logger.Debug("probe cache store failed", zap.String("path", path), zap.Error(err))
	}
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
