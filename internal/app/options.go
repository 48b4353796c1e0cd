package app

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/faena/internal/services/session"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	sessions    session.Store
	redis       *redis.Client
	cacheTTL    time.Duration
	location    *time.Location
	projects    string
	tasks       string
	prefetchAll bool
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		location: time.Local,
		projects: "projects",
		tasks:    "tasks",
	}
}

// WithSessionStore sets where the session secret is persisted
func WithSessionStore(store session.Store) Option {
	return func(cfg *appConfig) {
		cfg.sessions = store
	}
}

// WithRedis caches directory lookups in redis
func WithRedis(client *redis.Client, ttl time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.redis = client
		cfg.cacheTTL = ttl
	}
}

// WithLocation sets the timezone dates are entered in
func WithLocation(loc *time.Location) Option {
	return func(cfg *appConfig) {
		if loc != nil {
			cfg.location = loc
		}
	}
}

// WithCollections overrides the document collection names
func WithCollections(projects, tasks string) Option {
	return func(cfg *appConfig) {
		if projects != "" {
			cfg.projects = projects
		}
		if tasks != "" {
			cfg.tasks = tasks
		}
	}
}

// WithDirectoryIndex prefetches the whole user directory before enriching
// memberships. Only worth it for small installations.
func WithDirectoryIndex(enabled bool) Option {
	return func(cfg *appConfig) {
		cfg.prefetchAll = enabled
	}
}
