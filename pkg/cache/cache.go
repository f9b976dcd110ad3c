package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultTTL is the entry lifetime applied when none is configured.
const DefaultTTL = 5 * time.Minute

// Config configures the cache store.
type Config struct {
	// Path is the SQLite database file path (required). Use ":memory:"
	// for an ephemeral store.
	Path string

	// TTL is the entry lifetime.
	// Default: 5 minutes
	TTL time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Cache is a TTL'd key-value store for serialized search responses,
// persisted in SQLite. It is safe for concurrent use.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger

	closeOnce sync.Once

	getStmt   *sql.Stmt
	putStmt   *sql.Stmt
	purgeStmt *sql.Stmt
}

// New opens (or creates) a cache at the given path with default
// settings.
func New(path string, ttl time.Duration) (*Cache, error) {
	return NewWithConfig(Config{Path: path, TTL: ttl})
}

// NewWithConfig opens a cache with custom configuration.
func NewWithConfig(cfg Config) (*Cache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	c := &Cache{
		db:     db,
		ttl:    cfg.TTL,
		logger: slog.Default().With("component", "cache"),
	}

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	if err := c.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare cache statements: %w", err)
	}

	return c, nil
}

func (c *Cache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS search_results (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_expires_at ON search_results(expires_at);
	`
	_, err := c.db.Exec(schema)
	return err
}

func (c *Cache) prepareStatements() error {
	var err error
	if c.getStmt, err = c.db.Prepare(
		`SELECT value FROM search_results WHERE key = ? AND expires_at > ?`); err != nil {
		return err
	}
	if c.putStmt, err = c.db.Prepare(
		`INSERT INTO search_results (key, value, expires_at, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   expires_at = excluded.expires_at,
		   created_at = excluded.created_at`); err != nil {
		return err
	}
	if c.purgeStmt, err = c.db.Prepare(
		`DELETE FROM search_results WHERE expires_at <= ?`); err != nil {
		return err
	}
	return nil
}

// Get returns the stored value for a key. The second return is false
// when the key is absent or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := c.getStmt.QueryRowContext(ctx, key, time.Now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	return value, true, nil
}

// Put stores a value under a key, replacing any existing entry and
// resetting its expiry to now + TTL.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	_, err := c.putStmt.ExecContext(ctx, key, value, now.Add(c.ttl).Unix(), now.Unix())
	if err != nil {
		return fmt.Errorf("cache put failed: %w", err)
	}
	return nil
}

// Purge deletes all expired entries and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.purgeStmt.ExecContext(ctx, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("cache purge failed: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		c.logger.Debug("purged expired cache entries", "removed", removed)
	}
	return removed, nil
}

// Len returns the number of live (unexpired) entries.
func (c *Cache) Len(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM search_results WHERE expires_at > ?`, time.Now().Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("cache len failed: %w", err)
	}
	return n, nil
}

// Close releases the prepared statements and the database handle.
func (c *Cache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{c.getStmt, c.putStmt, c.purgeStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = c.db.Close()
	})
	return err
}
