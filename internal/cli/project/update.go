package project

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
)

var updateFlags = []string{"name", "description", "status", "start", "end"}

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [project-id]",
		Short: "Update a project",
		Long: `Update project fields. Only the flags you pass are changed.
Pass an empty value to clear a date, e.g. --end="".

Examples:
  faena project update abc123 --name="Backend API v2"
  faena project update --id=abc123 --status="on hold" --end=31.12.2026
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(runUpdate),
	}

	cmd.Flags().String("id", "", "Project ID")
	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("status", "", "New status: active, on hold, completed")
	cmd.Flags().String("start", "", "New start date")
	cmd.Flags().String("end", "", "New end date")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	id, err := c.Flags.ID("id")
	if err != nil {
		return nil, err
	}
	if !c.Flags.AnyChanged(updateFlags...) {
		return nil, cli.Usage("at least one of --name, --description, --status, --start or --end is required")
	}

	description := c.Flags.Optional("description")
	if description != nil {
		value, err := cli.ReadDescription(c.Cmd, *description)
		if err != nil {
			return nil, err
		}
		description = &value
	}

	project, err := c.CLI.App.ProjectService.Update(c, projectservice.UpdateProjectRequest{
		ID:          id,
		Name:        c.Flags.Optional("name"),
		Description: description,
		Status:      c.Flags.Optional("status"),
		StartDate:   c.Flags.Optional("start"),
		EndDate:     c.Flags.Optional("end"),
	})
	if err != nil {
		return nil, err
	}
	return projectResult{Project: project, dates: c.CLI.App.Dates, verb: "updated"}, nil
}

// StatusCmd returns the project status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <project-id> <status>",
		Short: "Change a project's status",
		Long: `Change a project's status. Valid statuses are active, on hold and completed.

Examples:
  faena project status abc123 completed
  faena project status abc123 "on hold"
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(runStatus),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStatus(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	project, err := c.CLI.App.ProjectService.UpdateStatus(c, c.Args[0], c.Args[1])
	if err != nil {
		return nil, err
	}
	return projectResult{Project: project, dates: c.CLI.App.Dates, verb: "updated"}, nil
}
