package project

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/pipeline"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Long: `List the projects you manage and the projects of your teams.

Examples:
  faena project list
  faena project list --status "on hold" --sort name
  faena project list --search launch --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runList),
	}

	cmd.Flags().String("search", "", "Case-insensitive text in name or description")
	cmd.Flags().String("status", pipeline.FilterAll, "Status filter: all, active, on hold, completed")
	cmd.Flags().String("sort", string(pipeline.SortNewest), "Sort: "+joinSorts())
	cli.AddOutputFlags(cmd)

	return cmd
}

func joinSorts() string {
	names := make([]string, len(pipeline.ProjectSorts))
	for i, s := range pipeline.ProjectSorts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func runList(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
		return nil, err
	}

	sort, ok := pipeline.ParseProjectSort(c.Flags.Value("sort"))
	if !ok {
		return nil, cli.Usage(fmt.Sprintf("invalid sort %q (must be: %s)", c.Flags.Value("sort"), joinSorts()))
	}

	projects, err := c.CLI.App.ProjectService.List(c, user.ID, pipeline.ProjectQuery{
		Search: c.Flags.Value("search"),
		Status: c.Flags.Value("status"),
		Sort:   sort,
	})
	if err != nil {
		return nil, err
	}
	return projectList{projects: projects, dates: c.CLI.App.Dates}, nil
}
