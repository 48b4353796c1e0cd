// Package cmd assembles the faena command tree
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/auth"
	"github.com/thenoetrevino/faena/internal/cli/project"
	"github.com/thenoetrevino/faena/internal/cli/setup"
	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/cli/task"
	"github.com/thenoetrevino/faena/internal/cli/team"
	"github.com/thenoetrevino/faena/internal/cli/tutorial"
	"github.com/thenoetrevino/faena/internal/cli/use"
	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/logging"
	"github.com/thenoetrevino/faena/internal/tui"
)

// logCloser is the open log file, closed once the command finishes
var logCloser io.Closer

// NewRootCmd builds the faena command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "faena",
		Short: "Faena - projects, tasks and teams from the terminal",
		Long: `Faena manages projects, their tasks and their teams on an Appwrite
server or a local database. Run it without a command to open the
interactive dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: prepare,
		RunE:              runTUI,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usage(err.Error())
	})

	rootCmd.AddCommand(auth.Commands()...)
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(team.TeamCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(setup.SetupCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	})

	return rootCmd
}

// prepare loads the config once and shares it with every command
func prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	styles.Init(cfg.ColorScheme)

	closer, err := logging.Init(cfg.Level())
	if err != nil {
		// Commands still work without a log file
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
	} else {
		logCloser = closer
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(cli.WithConfig(ctx, cfg))
	return nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("Error closing app", "error", err)
		}
	}()

	slog.Info("starting tui", "backend", c.Config.Backend)
	return tui.Run(ctx, c.App, c.Config)
}

// Execute runs the command tree with ctx
func Execute(ctx context.Context) error {
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()
	return NewRootCmd().ExecuteContext(ctx)
}
