package project

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Delete a project and its tasks",
		Long: `Delete a project. Its tasks are deleted first.
With --with-team the project's team is deleted as well.

Examples:
  faena project delete abc123
  faena project delete --id=abc123 --with-team --force
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runDelete),
	}

	cmd.Flags().String("id", "", "Project ID")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cmd.Flags().Bool("with-team", false, "Also delete the project's team")
	cli.AddOutputFlags(cmd)

	return cmd
}

// deleteResult reports what project delete removed
type deleteResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	*projectservice.DeleteResult
}

func (r deleteResult) GetID() string { return r.ID }

func (r deleteResult) PrintHuman(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "✓ Project '%s' deleted (ID: %s)\n", r.Name, r.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Tasks deleted: %d\n", r.TasksDeleted); err != nil {
		return err
	}
	if r.TasksFailed > 0 {
		if _, err := fmt.Fprintf(w, "  Tasks that could not be deleted: %d\n", r.TasksFailed); err != nil {
			return err
		}
	}
	if r.TeamDeleted {
		_, err := fmt.Fprintln(w, "  Team deleted")
		return err
	}
	return nil
}

func runDelete(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	id, err := c.Flags.ID("id")
	if err != nil {
		return nil, err
	}

	project, err := c.CLI.App.ProjectService.Get(c, id)
	if err != nil {
		return nil, err
	}

	if !c.Flags.Bool("force") && !c.Format.Quiet && !c.Format.JSON {
		question := fmt.Sprintf("Delete project '%s' and all of its tasks?", project.Name)
		if !cli.Confirm(c.Cmd, question) {
			fmt.Fprintln(c.Format.Err, "Deletion cancelled")
			return nil, nil
		}
	}

	result, err := c.CLI.App.ProjectService.Delete(c, id, projectservice.DeleteOptions{
		WithTeam: c.Flags.Bool("with-team"),
	})
	if err != nil {
		return nil, err
	}
	return deleteResult{ID: project.ID, Name: project.Name, DeleteResult: result}, nil
}
