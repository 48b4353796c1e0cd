// Package local implements the platform contract on an embedded SQLite
// database. It backs offline use and the service tests.
package local

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/faena/internal/platform"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite-backed platform
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one connection: an in-memory database only exists on the connection that created it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Debug("applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock replaces the time source
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Backend returns platform services. User-facing services act as the user
// whose session secret was passed to Accounts.UseSession; Admin bypasses
// permissions.
func (s *Store) Backend() platform.Backend {
	c := &client{store: s}
	return platform.Backend{
		Accounts:  &accounts{c: c},
		Databases: &documents{c: c},
		Teams:     &teams{c: c},
		Admin:     &admin{s: s},
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func newID() string {
	return uuid.NewString()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func decodeStrings(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// client carries the session used by the user-facing services
type client struct {
	store *Store

	mu     sync.RWMutex
	secret string
}

func (c *client) setSecret(secret string) {
	c.mu.Lock()
	c.secret = secret
	c.mu.Unlock()
}

func (c *client) sessionSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.secret
}

// currentUserID resolves the session to a user
func (c *client) currentUserID(ctx context.Context) (string, error) {
	secret := c.sessionSecret()
	if secret == "" {
		return "", fmt.Errorf("no active session: %w", platform.ErrUnauthorized)
	}

	var userID, expire string
	err := c.store.db.QueryRowContext(ctx,
		"SELECT user_id, expire FROM sessions WHERE secret = ?", secret,
	).Scan(&userID, &expire)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("session not found: %w", platform.ErrUnauthorized)
	}
	if err != nil {
		return "", err
	}
	if !parseTime(expire).After(c.store.now()) {
		return "", fmt.Errorf("session expired: %w", platform.ErrUnauthorized)
	}
	return userID, nil
}
