package project

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show project details",
		Long:  "Show a project with its description, task counts and team members.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(runShow),
	}

	cmd.Flags().String("id", "", "Project ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

// projectDetail is the result of project show
type projectDetail struct {
	Project    *models.Project              `json:"project"`
	TaskCounts map[models.TaskStatus]int    `json:"taskCounts"`
	Members    []*models.EnrichedMembership `json:"members,omitempty"`
	dates      *dates.Normalizer
}

func (d projectDetail) GetID() string { return d.Project.ID }

func (d projectDetail) PrintHuman(w io.Writer) error {
	p := d.Project
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(p.Name))
	content.WriteString("\n\n")

	fmt.Fprintf(&content, "%s %s  %s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"), styles.RenderStatus(p.Status),
		styles.LabelStyle.Render("Start:"), styles.ValueStyle.Render(d.dates.DisplayOr(p.StartDate, "-")),
		styles.LabelStyle.Render("End:"), styles.ValueStyle.Render(d.dates.DisplayOr(p.EndDate, "-")),
	)
	fmt.Fprintf(&content, "%s %s\n", styles.LabelStyle.Render("ID:"), styles.SubtitleStyle.Render(p.ID))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&content, "%s %s\n",
			styles.LabelStyle.Render("Created:"),
			styles.SubtitleStyle.Render(p.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM")),
		)
	}

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(styles.RenderMarkdown(p.Description, styles.CardWidth-6))
	content.WriteString("\n")

	content.WriteString(styles.SectionStyle.Render("Tasks"))
	content.WriteString("\n")
	var counts []string
	for _, s := range models.TaskStatuses {
		counts = append(counts, fmt.Sprintf("%s %d", s.Label(), d.TaskCounts[s]))
	}
	content.WriteString("  " + styles.ValueStyle.Render(strings.Join(counts, " · ")) + "\n")

	if p.HasTeam() {
		content.WriteString(styles.SectionStyle.Render("Members"))
		content.WriteString("\n")
		for _, m := range d.Members {
			line := "  • " + m.Label()
			if m.IsCurrentUser {
				line += styles.SubtitleStyle.Render(" (you)")
			}
			content.WriteString(line + "\n")
		}
	}

	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return err
}

func runShow(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
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

	detail := projectDetail{
		Project:    project,
		TaskCounts: make(map[models.TaskStatus]int),
		dates:      c.CLI.App.Dates,
	}

	tasks, err := c.CLI.App.TaskService.List(c, id, pipeline.TaskQuery{})
	if err != nil {
		slog.Warn("failed to load tasks for project", "project", id, "error", err)
	}
	for _, t := range tasks {
		detail.TaskCounts[t.Status]++
	}

	if project.HasTeam() {
		members, err := c.CLI.App.TeamService.Members(c, project.TeamID, user)
		if err != nil {
			slog.Warn("failed to load members", "team", project.TeamID, "error", err)
		}
		detail.Members = members
	}

	return detail, nil
}
