package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/app"
	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/tui/theme"
)

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, a *app.App, cfg *config.Config) error {
	if cfg != nil {
		theme.Init(cfg.ColorScheme)
	}

	model := InitialModel(ctx, a, cfg)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
