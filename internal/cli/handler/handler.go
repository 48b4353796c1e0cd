// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
)

// Context is what a command handler receives
type Context struct {
	context.Context
	CLI    *cli.CLI
	Cmd    *cobra.Command
	Args   []string
	Format *cli.OutputFormatter
	Flags  *FlagParser
}

// Func runs a command. A non-nil result is written with the formatter.
type Func func(c *Context) (any, error)

// Command wraps common command execution logic.
// Returns a cobra RunE compatible function.
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		formatter := cli.NewFormatter(cmd)

		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("Error closing CLI", "error", err)
			}
		}()

		result, err := fn(&Context{
			Context: ctx,
			CLI:     cliInstance,
			Cmd:     cmd,
			Args:    args,
			Format:  formatter,
			Flags:   NewFlagParser(cmd, args),
		})
		if err != nil {
			return formatter.Fail(err)
		}
		if result == nil {
			return nil
		}

		// Common output formatting
		return formatter.Success(result)
	}
}
