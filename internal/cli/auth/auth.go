// Package auth holds the cli commands that manage the session
//
// e.g., faena login, faena whoami
package auth

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/cli/handler"
	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/models"
	osuser "github.com/thenoetrevino/faena/internal/user"
)

// Commands returns the session commands for the root command
func Commands() []*cobra.Command {
	return []*cobra.Command{LoginCmd(), RegisterCmd(), LogoutCmd(), WhoamiCmd()}
}

// userResult prints a user in every output mode
type userResult struct {
	*models.User
	verb string
}

func (u userResult) GetID() string { return u.ID }

func (u userResult) PrintHuman(w io.Writer) error {
	name := u.DisplayName()
	if u.verb == "" {
		_, err := fmt.Fprintf(w, "%s %s <%s>\n", styles.LabelStyle.Render("Signed in as"), styles.ValueStyle.Render(name), u.Email)
		return err
	}
	_, err := fmt.Fprintf(w, "✓ %s as %s (ID: %s)\n", u.verb, name, u.ID)
	return err
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in and store the session in ~/.faena/session.yaml.

Examples:
  faena login --email ana@example.com
  echo "$PASSWORD" | faena login --email ana@example.com
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runLogin),
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func password(c *handler.Context) (string, error) {
	if pw := c.Flags.Value("password"); pw != "" {
		return pw, nil
	}
	return cli.ReadPassword(c.Cmd, "Password: ")
}

func runLogin(c *handler.Context) (any, error) {
	email, err := c.Flags.String("email")
	if err != nil {
		return nil, err
	}
	pw, err := password(c)
	if err != nil {
		return nil, err
	}

	user, err := c.CLI.App.Session.Login(c, email, pw)
	if err != nil {
		return nil, err
	}
	return userResult{User: user, verb: "Signed in"}, nil
}

// RegisterCmd returns the register command
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(runRegister),
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("name", "", "Display name (defaults to your OS account name)")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRegister(c *handler.Context) (any, error) {
	email, err := c.Flags.String("email")
	if err != nil {
		return nil, err
	}
	pw, err := password(c)
	if err != nil {
		return nil, err
	}

	name := c.Flags.Value("name")
	if name == "" {
		name = osuser.DefaultName()
	}

	user, err := c.CLI.App.Session.Register(c, email, pw, name)
	if err != nil {
		return nil, err
	}
	return userResult{User: user, verb: "Registered and signed in"}, nil
}

type loggedOut struct {
	LoggedOut bool `json:"loggedOut"`
}

func (loggedOut) PrintHuman(w io.Writer) error {
	_, err := fmt.Fprintln(w, "✓ Signed out")
	return err
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: handler.Command(func(c *handler.Context) (any, error) {
			if err := c.CLI.App.Session.Logout(c); err != nil {
				return nil, err
			}
			return loggedOut{LoggedOut: true}, nil
		}),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: handler.Command(func(c *handler.Context) (any, error) {
			user, err := c.CLI.User()
			if err != nil {
				return nil, err
			}
			return userResult{User: user}, nil
		}),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}
