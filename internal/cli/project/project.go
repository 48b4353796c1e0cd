// Package project holds all cli commands related to projects
//
// e.g., faena project ...
package project

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// projectResult is a single project with display dates
type projectResult struct {
	*models.Project
	dates *dates.Normalizer
	verb  string
}

func (p projectResult) PrintHuman(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "✓ Project '%s' %s (ID: %s)\n", p.Name, p.verb, p.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Status: %s  Start: %s  End: %s\n",
		styles.RenderStatus(p.Status),
		p.dates.DisplayOr(p.StartDate, "-"),
		p.dates.DisplayOr(p.EndDate, "-"),
	)
	return err
}

// projectList is the result of project list
type projectList struct {
	projects []*models.Project
	dates    *dates.Normalizer
}

func (l projectList) IDs() []string {
	ids := make([]string, len(l.projects))
	for i, p := range l.projects {
		ids[i] = p.ID
	}
	return ids
}

func (l projectList) MarshalJSON() ([]byte, error) {
	if l.projects == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.projects)
}

func (l projectList) PrintHuman(w io.Writer) error {
	if len(l.projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects found")
		return err
	}

	if _, err := fmt.Fprintf(w, "Found %d projects:\n\n", len(l.projects)); err != nil {
		return err
	}
	for _, p := range l.projects {
		line := fmt.Sprintf("  [%s] %s  %s  %s → %s",
			p.ID,
			styles.TitleStyle.Render(p.Name),
			styles.RenderStatus(p.Status),
			l.dates.DisplayOr(p.StartDate, "-"),
			l.dates.DisplayOr(p.EndDate, "-"),
		)
		if p.Description != "" {
			line += " - " + styles.SubtitleStyle.Render(p.Description)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
