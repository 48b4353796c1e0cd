// Package cli runs cobra commands against an in-memory backend.
// It is separate from testutil to avoid import cycles when service tests
// import testutil.
package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/app"
	faenacli "github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform/local"
	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/testutil"
)

// Env is a signed-in app over an in-memory store
type Env struct {
	Store *local.Store
	App   *app.App
	User  *models.User
}

// SetupCLITest creates an in-memory store and an app signed in as a fresh user
func SetupCLITest(t *testing.T) *Env {
	t.Helper()
	store := testutil.NewStore(t)
	backend, user := testutil.SignUp(t, store, "cli@example.com", "CLI User")

	application := app.New(backend, app.WithSessionStore(&session.MemoryStore{}))
	application.Session.Refresh(context.Background())

	return &Env{Store: store, App: application, User: user}
}

// Result is the captured output of a command
type Result struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand runs cmd with args against testApp
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (Result, error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
}

// ExecuteCLICommandWithInput runs cmd with stdin set to input
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (Result, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := faenacli.WithApp(context.Background(), testApp)
	err := cmd.ExecuteContext(ctx)

	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
