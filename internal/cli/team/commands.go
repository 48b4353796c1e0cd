package team

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/models"
)

// CreateCmd returns the team create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team for a project",
		Long: `Create a team named after the project and share the project with it.

Examples:
  faena team create --project=abc123
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runCreate),
	}
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	projectID, err := c.Flags.ProjectID()
	if err != nil {
		return nil, err
	}
	team, err := c.CLI.App.TeamService.CreateForProject(c, projectID)
	if err != nil {
		return nil, err
	}
	return teamResult{Team: team, ProjectID: projectID}, nil
}

// MembersCmd returns the team members subcommand
func MembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List the members of a project's team",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runMembers),
	}
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMembers(c *handler.Context) (any, error) {
	user, err := c.CLI.User()
	if err != nil {
		return nil, err
	}
	project, err := teamOf(c)
	if err != nil {
		return nil, err
	}
	members, err := c.CLI.App.TeamService.Members(c, project.TeamID, user)
	if err != nil {
		return nil, err
	}
	return memberList{members: members}, nil
}

// InviteCmd returns the team invite subcommand
func InviteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a user to a project's team",
		Long: `Invite a registered user, by email, to the project's team.
Inviting someone who is already a member succeeds and returns the existing membership.

Examples:
  faena team invite bo@example.com
  faena team invite bo@example.com --role=owner --project=abc123
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runInvite),
	}
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cmd.Flags().String("role", models.RoleMember, "Role: owner or member")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runInvite(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	project, err := teamOf(c)
	if err != nil {
		return nil, err
	}
	m, err := c.CLI.App.TeamService.Invite(c, project.TeamID, c.Args[0], []string{c.Flags.Value("role")})
	if err != nil {
		return nil, err
	}
	return membershipResult{Membership: m, verb: "invited"}, nil
}

// RemoveCmd returns the team remove subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <membership-id>",
		Short: "Remove a member from a project's team",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(runRemove),
	}
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cli.AddOutputFlags(cmd)
	return cmd
}

type removed struct {
	ID string `json:"id"`
}

func (r removed) GetID() string { return r.ID }

func (r removed) PrintHuman(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ Membership %s removed\n", r.ID)
	return err
}

func runRemove(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	project, err := teamOf(c)
	if err != nil {
		return nil, err
	}
	if err := c.CLI.App.TeamService.Remove(c, project.TeamID, c.Args[0]); err != nil {
		return nil, err
	}
	return removed{ID: c.Args[0]}, nil
}

// RoleCmd returns the team role subcommand
func RoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role <membership-id> <role>",
		Short: "Change a member's role",
		Long: `Change a member's role to owner or member. Owners cannot be changed.

Examples:
  faena team role m123 owner
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(runRole),
	}
	cmd.Flags().String("project", "", "Project ID (or FAENA_PROJECT)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRole(c *handler.Context) (any, error) {
	if _, err := c.CLI.User(); err != nil {
		return nil, err
	}
	project, err := teamOf(c)
	if err != nil {
		return nil, err
	}
	m, err := c.CLI.App.TeamService.ChangeRole(c, project.TeamID, c.Args[0], c.Args[1])
	if err != nil {
		return nil, err
	}
	return membershipResult{Membership: m, verb: "updated"}, nil
}

// ConfirmCmd returns the team confirm subcommand
func ConfirmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Accept a team invitation",
		Long: `Accept a team invitation using the values from the invitation link.

Examples:
  faena team confirm --team=t1 --membership=m1 --user=u1 --secret=s3cr3t
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runConfirm),
	}
	cmd.Flags().String("team", "", "Team ID")
	cmd.Flags().String("membership", "", "Membership ID")
	cmd.Flags().String("user", "", "User ID")
	cmd.Flags().String("secret", "", "Invitation secret")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runConfirm(c *handler.Context) (any, error) {
	m, err := c.CLI.App.TeamService.Confirm(c,
		c.Flags.Value("team"),
		c.Flags.Value("membership"),
		c.Flags.Value("user"),
		c.Flags.Value("secret"),
	)
	if err != nil {
		return nil, err
	}
	return membershipResult{Membership: m, verb: "joined"}, nil
}
