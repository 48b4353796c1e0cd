// Package team holds all cli commands related to project teams
//
// e.g., faena team ...
package team

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/models"
)

// TeamCmd returns the team parent command
func TeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team of a project",
		Long: `Manage the team shared with a project.

A project has at most one team. Team members can read the project.
Owner memberships cannot be removed or have their role changed.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(MembersCmd())
	cmd.AddCommand(InviteCmd())
	cmd.AddCommand(RemoveCmd())
	cmd.AddCommand(RoleCmd())
	cmd.AddCommand(ConfirmCmd())

	return cmd
}

// teamOf returns the team linked to the project selected by --project or FAENA_PROJECT
func teamOf(c *handler.Context) (*models.Project, error) {
	projectID, err := c.Flags.ProjectID()
	if err != nil {
		return nil, err
	}
	project, err := c.CLI.App.ProjectService.Get(c, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasTeam() {
		return nil, fmt.Errorf("%w: %s", cli.ErrNoTeam, project.Name)
	}
	return project, nil
}

// teamResult reports a created team
type teamResult struct {
	*models.Team
	ProjectID string `json:"projectId"`
}

func (t teamResult) GetID() string { return t.ID }

func (t teamResult) PrintHuman(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ Team '%s' created for project %s (ID: %s)\n", t.Name, t.ProjectID, t.ID)
	return err
}

// membershipResult reports a single membership change
type membershipResult struct {
	*models.Membership
	verb string
}

func (m membershipResult) PrintHuman(w io.Writer) error {
	who := cmp.Or(m.UserName, m.UserEmail, m.UserID)
	_, err := fmt.Fprintf(w, "✓ %s %s as %s (membership: %s)\n", who, m.verb, strings.Join(m.Roles, ", "), m.ID)
	return err
}

// memberList is the result of team members
type memberList struct {
	members []*models.EnrichedMembership
}

func (l memberList) IDs() []string {
	ids := make([]string, len(l.members))
	for i, m := range l.members {
		ids[i] = m.ID
	}
	return ids
}

func (l memberList) MarshalJSON() ([]byte, error) {
	if l.members == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.members)
}

func (l memberList) PrintHuman(w io.Writer) error {
	if len(l.members) == 0 {
		_, err := fmt.Fprintln(w, "No members")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d members:\n\n", len(l.members)); err != nil {
		return err
	}
	for _, m := range l.members {
		line := fmt.Sprintf("  [%s] %s", m.ID, styles.TitleStyle.Render(m.Label()))
		if m.IsCurrentUser {
			line += styles.SubtitleStyle.Render(" (you)")
		}
		if !m.Confirmed {
			line += styles.SubtitleStyle.Render(" invited")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
