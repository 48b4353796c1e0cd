package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/faena/internal/app"
	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/models"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	// borrowed apps belong to the caller and are not closed
	borrowed bool
}

type contextKey int

const (
	appKey contextKey = iota
	configKey
)

// WithApp makes commands run against an existing app instead of opening one
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithConfig carries an already loaded config to the commands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the config stored with WithConfig, loading it
// from disk when absent
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// NewCLI loads the configuration and opens the configured backend
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{App: application, Config: cfg}, nil
}

// GetCLIFromContext returns a CLI around the app injected with WithApp, or
// opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		cfg, ok := ctx.Value(configKey).(*config.Config)
		if !ok {
			cfg = config.Default()
		}
		return &CLI{App: a, Config: cfg, borrowed: true}, nil
	}
	return NewCLI(ctx)
}

// User returns the signed-in user
func (c *CLI) User() (*models.User, error) {
	return c.App.Session.RequireUser()
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.borrowed {
		return nil
	}
	return c.App.Close()
}
