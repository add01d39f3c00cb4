package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLCache stores payloads in the upstream_cache table (Postgres or SQLite).
type SQLCache struct {
	DB  *sqlx.DB
	Now func() time.Time
}

// NewSQLCache constructs a SQLCache over an open connection.
func NewSQLCache(db *sqlx.DB) *SQLCache {
	return &SQLCache{DB: db, Now: time.Now}
}

type cacheRow struct {
	Payload   string `db:"payload"`
	ExpiresAt int64  `db:"expires_at"`
}

// Get returns the payload for key unless it is missing or expired.
func (c *SQLCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := c.DB.Rebind(`SELECT payload, expires_at FROM upstream_cache WHERE cache_key = ?`)
	var row cacheRow
	if err := c.DB.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	if row.ExpiresAt <= c.now().Unix() {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

// Set upserts the payload for key.
func (c *SQLCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	query := c.DB.Rebind(`
INSERT INTO upstream_cache (cache_key, payload, expires_at, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (cache_key) DO UPDATE SET
	payload = excluded.payload,
	expires_at = excluded.expires_at,
	created_at = excluded.created_at`)
	if _, err := c.DB.ExecContext(ctx, query, key, string(value), now.Add(ttl).Unix(), now.Unix()); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Purge deletes expired rows and reports how many were removed.
func (c *SQLCache) Purge(ctx context.Context) (int64, error) {
	query := c.DB.Rebind(`DELETE FROM upstream_cache WHERE expires_at <= ?`)
	res, err := c.DB.ExecContext(ctx, query, c.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("cache purge: %w", err)
	}
	return res.RowsAffected()
}

func (c *SQLCache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
