package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/pipeline"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		Long: fmt.Sprintf(`List the tasks of a project, newest first by default.

Sort modes: %s

Examples:
  faena task list --project=abc123
  faena task list --status=in_progress --priority=high
  faena task list --search="login" --sort=deadline --json
`, joinSorts()),
		Args: cobra.NoArgs,
		RunE: handler.Command(runList),
	}

	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cmd.Flags().String("search", "", "Case-insensitive search over title and description")
	cmd.Flags().String("status", pipeline.FilterAll, "Status filter: all, todo, in_progress, review, done")
	cmd.Flags().String("priority", pipeline.FilterAll, "Priority filter: all, low, medium, high, critical")
	cmd.Flags().String("sort", string(pipeline.SortCreated), "Sort mode")
	cli.AddOutputFlags(cmd)

	return cmd
}

func joinSorts() string {
	names := make([]string, len(pipeline.TaskSorts))
	for i, s := range pipeline.TaskSorts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func runList(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	projectID, err := c.Flags.ProjectID()
	if err != nil {
		return nil, err
	}
	sort, ok := pipeline.ParseTaskSort(c.Flags.Value("sort"))
	if !ok {
		return nil, cli.Usage(fmt.Sprintf("unknown sort %q: use %s", c.Flags.Value("sort"), joinSorts()))
	}

	tasks, err := c.CLI.App.TaskService.List(c, projectID, pipeline.TaskQuery{
		Search:   c.Flags.Value("search"),
		Status:   c.Flags.Value("status"),
		Priority: c.Flags.Value("priority"),
		Sort:     sort,
	})
	if err != nil {
		return nil, err
	}
	return taskList{tasks: tasks, dates: c.CLI.App.Dates}, nil
}
