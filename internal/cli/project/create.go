package project

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project managed by you.

Dates accept dd.mm.yyyy or yyyy-mm-dd. The start date defaults to today.

Examples:
  # Simple project (human-readable output)
  faena project create --name="Backend API"

  # Quiet mode for bash capture
  PROJECT_ID=$(faena project create --name="Backend API" --quiet)

  # With dates and description
  faena project create \
    --name="Backend API" \
    --description="REST API for mobile app" \
    --start=01.02.2026 --end=30.06.2026
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name (required)")

	// Optional flags
	cmd.Flags().String("description", "", "Project description (use - for stdin)")
	cmd.Flags().String("status", "active", "Status: active, on hold, completed")
	cmd.Flags().String("start", "", "Start date (defaults to today)")
	cmd.Flags().String("end", "", "End date")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
		return nil, err
	}
	name, err := c.Flags.String("name")
	if err != nil {
		return nil, err
	}
	description, err := cli.ReadDescription(c.Cmd, c.Flags.Value("description"))
	if err != nil {
		return nil, err
	}

	project, err := c.CLI.App.ProjectService.Create(c, projectservice.CreateProjectRequest{
		Name:        name,
		Description: description,
		Status:      c.Flags.Value("status"),
		StartDate:   c.Flags.Value("start"),
		EndDate:     c.Flags.Value("end"),
		ManagerID:   user.ID,
	})
	if err != nil {
		return nil, err
	}
	return projectResult{Project: project, dates: c.CLI.App.Dates, verb: "created"}, nil
}
