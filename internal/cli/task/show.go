package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show task details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(runShow),
	}

	cmd.Flags().String("id", "", "Task ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

type taskDetail struct {
	*models.Task
	dates *dates.Normalizer
}

func (d taskDetail) PrintHuman(w io.Writer) error {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(d.Title))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "%s %s  %s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"), styles.ValueStyle.Render(d.Status.Label()),
		styles.LabelStyle.Render("Priority:"), styles.RenderPriority(d.Priority),
		styles.LabelStyle.Render("Due:"), styles.ValueStyle.Render(d.dates.DisplayOr(d.DueDate, "-")),
	)
	fmt.Fprintf(&content, "%s %s  %s %s\n",
		styles.LabelStyle.Render("ID:"), styles.SubtitleStyle.Render(d.ID),
		styles.LabelStyle.Render("Project:"), styles.SubtitleStyle.Render(d.ProjectID),
	)
	if d.AssigneeID != "" {
		fmt.Fprintf(&content, "%s %s\n", styles.LabelStyle.Render("Assignee:"), styles.SubtitleStyle.Render(d.AssigneeID))
	}

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(styles.RenderMarkdown(d.Description, styles.CardWidth-6))

	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(content.String(), "\n")))
	return err
}

func runShow(c *handler.Context) (any, error) {
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
	return taskDetail{Task: task, dates: c.CLI.App.Dates}, nil
}
