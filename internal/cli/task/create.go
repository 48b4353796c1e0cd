package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project.

Examples:
  # Simple task (human-readable output)
  faena task create --title="Fix bug" --project=abc123

  # Quiet mode for bash capture
  TASK_ID=$(faena task create --title="Fix bug" --quiet)

  # With priority, due date and a description from stdin
  echo "Login fails on Safari" | faena task create \
    --title="Fix login" --priority=high --due=15.03.2026 --description=-
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")

	// Optional flags
	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("status", "todo", "Status: todo, in_progress, review, done")
	cmd.Flags().String("priority", "medium", "Priority: low, medium, high, critical")
	cmd.Flags().String("due", "", "Due date (dd.mm.yyyy or yyyy-mm-dd)")
	cmd.Flags().String("assignee", "", "Assignee user ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
		return nil, err
	}
	title, err := c.Flags.String("title")
	if err != nil {
		return nil, err
	}
	projectID, err := c.Flags.ProjectID()
	if err != nil {
		return nil, err
	}
	description, err := cli.ReadDescription(c.Cmd, c.Flags.Value("description"))
	if err != nil {
		return nil, err
	}

	task, err := c.CLI.App.TaskService.Create(c, taskservice.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      c.Flags.Value("status"),
		Priority:    c.Flags.Value("priority"),
		DueDate:     c.Flags.Value("due"),
		AssigneeID:  c.Flags.Value("assignee"),
		CreatedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}
	return taskResult{Task: task, dates: c.CLI.App.Dates, verb: "created"}, nil
}
