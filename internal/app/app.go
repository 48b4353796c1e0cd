package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/directory"
	"github.com/thenoetrevino/faena/internal/platform"
	"github.com/thenoetrevino/faena/internal/platform/appwrite"
	"github.com/thenoetrevino/faena/internal/platform/local"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
	"github.com/thenoetrevino/faena/internal/services/session"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
	teamservice "github.com/thenoetrevino/faena/internal/services/team"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Backend   platform.Backend
	Session   *session.Gate
	Dates     *dates.Normalizer
	Directory directory.Directory

	ProjectService projectservice.Service
	TaskService    taskservice.Service
	TeamService    teamservice.Service

	closers []io.Closer
}

// New creates a new App with all services initialized on top of backend.
func New(backend platform.Backend, opts ...Option) *App {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	normalizer := dates.New(cfg.location)
	admin := directory.New(backend.Admin)

	var dir directory.Directory = admin
	if cfg.redis != nil {
		dir = directory.NewCache(admin, cfg.redis, cfg.cacheTTL)
	}

	teamDeps := teamservice.Deps{
		Teams:              backend.Teams,
		Admin:              backend.Admin,
		Databases:          backend.Databases,
		ProjectsCollection: cfg.projects,
		Directory:          dir,
		Finder:             admin,
	}
	if cfg.prefetchAll {
		teamDeps.Index = admin
	}

	a := &App{
		Backend:   backend,
		Session:   session.NewGate(backend.Accounts, cfg.sessions),
		Dates:     normalizer,
		Directory: dir,
		ProjectService: projectservice.NewService(
			backend.Databases, backend.Teams, backend.Admin,
			projectservice.Collections{Projects: cfg.projects, Tasks: cfg.tasks},
			normalizer,
		),
		TaskService: taskservice.NewService(backend.Databases,
			taskservice.Collections{Projects: cfg.projects, Tasks: cfg.tasks},
			normalizer,
		),
		TeamService: teamservice.NewService(teamDeps),
	}
	if cfg.redis != nil {
		a.closers = append(a.closers, cfg.redis)
	}
	return a
}

// Open builds the backend described by cfg and restores the saved session
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var (
		backend platform.Backend
		closers []io.Closer
	)

	switch cfg.Backend {
	case config.BackendLocal:
		store, err := local.Open(ctx, cfg.Local.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open local backend: %w", err)
		}
		backend = store.Backend()
		closers = append(closers, store)
	case config.BackendAppwrite:
		client, err := appwrite.New(cfg.Appwrite.Endpoint, cfg.Appwrite.ProjectID,
			appwrite.WithAPIKey(cfg.Appwrite.APIKey),
			appwrite.WithDatabase(cfg.Appwrite.DatabaseID),
			appwrite.WithSelfSigned(cfg.Appwrite.SelfSigned),
		)
		if err != nil {
			return nil, fmt.Errorf("configure appwrite: %w", err)
		}
		backend = client.Backend()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	sessions, err := session.NewFileStore("")
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithSessionStore(sessions),
		WithLocation(cfg.Location()),
		WithCollections(cfg.Appwrite.ProjectsCollection, cfg.Appwrite.TasksCollection),
		WithDirectoryIndex(cfg.Backend == config.BackendLocal),
	}
	if cfg.Directory.RedisAddr != "" {
		base = append(base, WithRedis(redis.NewClient(&redis.Options{Addr: cfg.Directory.RedisAddr}), cfg.Directory.CacheTTL))
	}

	a := New(backend, append(base, opts...)...)
	a.closers = append(a.closers, closers...)

	state := a.Session.Restore(ctx)
	slog.Debug("session restored", "backend", cfg.Backend, "state", state.String())
	return a, nil
}

// Close releases the backend and cache connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
