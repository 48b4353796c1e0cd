package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(faena use project abc123)        # Use project abc123
  eval $(faena use project --clear)       # Clear project context
  faena use project --show                # Show current project

The FAENA_PROJECT environment variable will be set in your current shell
session only. The --project flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if showFlag {
		return handler.Command(showCurrentProject)(cmd, args)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(errOut, "Would clear %s\n", cli.ProjectEnv)
			return nil
		}
		fmt.Fprintf(out, "unset %s\n", cli.ProjectEnv)
		fmt.Fprintln(errOut, "Cleared project context")
		return nil
	}

	if len(args) == 0 {
		return cli.Usage("project ID required\nUsage: eval $(faena use project <project-id>)")
	}

	return handler.Command(func(c *handler.Context) (any, error) {
		project, err := c.CLI.App.ProjectService.Get(c, args[0])
		if err != nil {
			return nil, err
		}

		// stdout carries only the export line so it can be eval'd
		if dryRun {
			fmt.Fprintf(errOut, "Would set %s=%s (%s)\n", cli.ProjectEnv, project.ID, project.Name)
			return nil, nil
		}
		fmt.Fprintf(out, "export %s=%s\n", cli.ProjectEnv, project.ID)
		fmt.Fprintf(errOut, "Now using project %s: %s\n", project.ID, project.Name)
		return nil, nil
	})(cmd, args)
}

func showCurrentProject(c *handler.Context) (any, error) {
	out := c.Cmd.OutOrStdout()
	current := os.Getenv(cli.ProjectEnv)
	if current == "" {
		fmt.Fprintln(out, "No project context set")
		fmt.Fprintln(out, "Use 'eval $(faena use project <project-id>)' to set one")
		return nil, nil
	}

	project, err := c.CLI.App.ProjectService.Get(c, current)
	if err != nil {
		fmt.Fprintf(out, "Current project: %s (project not found)\n", current)
		return nil, nil
	}
	fmt.Fprintf(out, "Current project: %s (%s)\n", project.ID, project.Name)
	return nil, nil
}
