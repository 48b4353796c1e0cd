package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(runDelete),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

type deleted struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (d deleted) GetID() string { return d.ID }

func (d deleted) PrintHuman(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ Task '%s' deleted (ID: %s)\n", d.Title, d.ID)
	return err
}

func runDelete(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	id, err := c.Flags.ID("id")
	if err != nil {
		return nil, err
	}
	task, err := c.CLI.App.TaskService.Get(c, id)
	if err != nil {
		return nil, err
	}

	if !c.Flags.Bool("force") && !c.Format.Quiet && !c.Format.JSON {
		if !cli.Confirm(c.Cmd, fmt.Sprintf("Delete task '%s'?", task.Title)) {
			fmt.Fprintln(c.Format.Err, "Deletion cancelled")
			return nil, nil
		}
	}

	if err := c.CLI.App.TaskService.Delete(c, id); err != nil {
		return nil, err
	}
	return deleted{ID: task.ID, Title: task.Title}, nil
}
