package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite
)

const defaultDSN = "file:douessay.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS licenses (
  key TEXT PRIMARY KEY,
  tier TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS usage (
  key TEXT NOT NULL REFERENCES licenses(key) ON DELETE CASCADE,
  day TEXT NOT NULL,
  uses INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (key, day)
);
`

// SQLStore persists licenses and usage in SQLite
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLStore opens the database and ensures the schema exists
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open license db: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping license db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Add registers or re-tiers a key
func (s *SQLStore) Add(ctx context.Context, key string, tier Tier) error {
	if _, err := ParseTier(string(tier)); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO licenses (key, tier, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET tier = excluded.tier`,
		key, string(tier), s.now().Unix())
	if err != nil {
		return fmt.Errorf("add license: %w", err)
	}
	return nil
}

// Validate returns the key's tier and today's usage
func (s *SQLStore) Validate(ctx context.Context, key string) (Validation, error) {
	tier, err := s.tier(ctx, s.db, key)
	if err != nil {
		return Validation{}, err
	}
	used, err := s.usage(ctx, s.db, key)
	if err != nil {
		return Validation{}, err
	}
	return validation(tier, used), nil
}

// IncrementUsage counts one use; it returns false when the daily limit was already reached
func (s *SQLStore) IncrementUsage(ctx context.Context, key string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	tier, err := s.tier(ctx, tx, key)
	if err != nil {
		return false, err
	}
	used, err := s.usage(ctx, tx, key)
	if err != nil {
		return false, err
	}
	if limit := Plans[tier].DailyLimit; limit != Unlimited && used >= limit {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO usage (key, day, uses) VALUES (?, ?, 1)
		 ON CONFLICT(key, day) DO UPDATE SET uses = uses + 1`,
		key, day(s.now()))
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *SQLStore) tier(ctx context.Context, q querier, key string) (Tier, error) {
	var tier string
	err := q.QueryRowContext(ctx, `SELECT tier FROM licenses WHERE key = ?`, key).Scan(&tier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnknownKey
	}
	if err != nil {
		return "", fmt.Errorf("lookup license: %w", err)
	}
	return Tier(tier), nil
}

func (s *SQLStore) usage(ctx context.Context, q querier, key string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT uses FROM usage WHERE key = ? AND day = ?`, key, day(s.now())).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup usage: %w", err)
	}
	return n, nil
}
