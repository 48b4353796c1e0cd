package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/models"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
)

var updateFlags = []string{"title", "description", "status", "priority", "due", "assignee"}

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update a task",
		Long: `Update task fields. Only the flags you pass are changed.
Pass an empty value to clear the due date or the assignee, e.g. --due="".

Examples:
  faena task update t1 --priority=critical
  faena task update --id=t1 --status=review --due=20.03.2026
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runUpdate),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("status", "", "New status: todo, in_progress, review, done")
	cmd.Flags().String("priority", "", "New priority: low, medium, high, critical")
	cmd.Flags().String("due", "", "New due date")
	cmd.Flags().String("assignee", "", "New assignee user ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
		return nil, err
	}
	id, err := c.Flags.ID("id")
	if err != nil {
		return nil, err
	}
	if !c.Flags.AnyChanged(updateFlags...) {
		return nil, cli.Usage("at least one of --title, --description, --status, --priority, --due or --assignee is required")
	}

	description := c.Flags.Optional("description")
	if description != nil {
		value, err := cli.ReadDescription(c.Cmd, *description)
		if err != nil {
			return nil, err
		}
		description = &value
	}

	task, err := c.CLI.App.TaskService.Update(c, taskservice.UpdateTaskRequest{
		ID:          id,
		Title:       c.Flags.Optional("title"),
		Description: description,
		Status:      c.Flags.Optional("status"),
		Priority:    c.Flags.Optional("priority"),
		DueDate:     c.Flags.Optional("due"),
		AssigneeID:  c.Flags.Optional("assignee"),
		UpdatedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}
	return taskResult{Task: task, dates: c.CLI.App.Dates, verb: "updated"}, nil
}

// StartCmd returns the task start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Mark a task as in progress",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(moveTo(models.TaskInProgress, "started")),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as done",
		Long: `Mark a task as done.

Examples:
  faena task done t1
  faena task done t1 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(moveTo(models.TaskDone, "completed")),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func moveTo(status models.TaskStatus, verb string) handler.Func {
	return func(c *handler.Context) (any, error) {
		user, err := c.CLI.User()
		if err != nil {
			return nil, err
		}
		value := string(status)
		task, err := c.CLI.App.TaskService.Update(c, taskservice.UpdateTaskRequest{
			ID:        c.Args[0],
			Status:    &value,
			UpdatedBy: user.ID,
		})
		if err != nil {
			return nil, err
		}
		return taskResult{Task: task, dates: c.CLI.App.Dates, verb: verb}, nil
	}
}
