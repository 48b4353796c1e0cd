package team

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/cli"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
	"github.com/thenoetrevino/faena/internal/testutil"
	clitest "github.com/thenoetrevino/faena/internal/testutil/cli"
)

type memberJSON struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Roles         []string `json:"roles"`
	DisplayName   string   `json:"displayName"`
	IsCurrentUser bool     `json:"isCurrentUser"`
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env), "output: %s", out)
	require.True(t, env.Success)
	return env.Data
}

func setup(t *testing.T) (*clitest.Env, string) {
	t.Helper()
	env := clitest.SetupCLITest(t)
	p, err := env.App.ProjectService.Create(context.Background(), projectservice.CreateProjectRequest{
		Name:      "Shared",
		ManagerID: env.User.ID,
	})
	require.NoError(t, err)
	return env, p.ID
}

func run(t *testing.T, env *clitest.Env, args ...string) (clitest.Result, error) {
	t.Helper()
	return clitest.ExecuteCLICommand(t, env.App, TeamCmd(), args)
}

// ============================================================================
// Create
// ============================================================================

func TestCreate(t *testing.T) {
	env, projectID := setup(t)

	res, err := run(t, env, "create", "--project", projectID)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Team 'Shared' created")

	project, err := env.App.ProjectService.Get(context.Background(), projectID)
	require.NoError(t, err)
	assert.True(t, project.HasTeam())

	_, err = run(t, env, "create", "--project", projectID)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err), "a project has at most one team")
}

func TestCommands_RequireTeam(t *testing.T) {
	env, projectID := setup(t)

	res, err := run(t, env, "members", "--project", projectID)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Contains(t, res.Stderr, "faena team create")
}

// ============================================================================
// Members / Invite / Role / Remove
// ============================================================================

func TestMembershipLifecycle(t *testing.T) {
	env, projectID := setup(t)
	_, bo := testutil.SignUp(t, env.Store, "bo@example.com", "Bo")

	_, err := run(t, env, "create", "--project", projectID)
	require.NoError(t, err)

	res, err := run(t, env, "invite", "BO@example.com", "--project", projectID, "--json")
	require.NoError(t, err)
	invited := decode[memberJSON](t, res.Stdout)
	assert.Equal(t, bo.ID, invited.UserID)
	assert.Equal(t, []string{"member"}, invited.Roles)

	res, err = run(t, env, "members", "--project", projectID, "--json")
	require.NoError(t, err)
	members := decode[[]memberJSON](t, res.Stdout)
	require.Len(t, members, 2)
	assert.Equal(t, "CLI User", members[0].DisplayName, "owner first")
	assert.True(t, members[0].IsCurrentUser)
	assert.Equal(t, "Bo", members[1].DisplayName)

	res, err = run(t, env, "members", "--project", projectID)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "CLI User (owner)")
	assert.Contains(t, res.Stdout, "(you)")

	// owners cannot be removed or demoted
	_, err = run(t, env, "remove", members[0].ID, "--project", projectID)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	_, err = run(t, env, "role", members[0].ID, "member", "--project", projectID)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = run(t, env, "role", invited.ID, "admin", "--project", projectID)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	res, err = run(t, env, "remove", invited.ID, "--project", projectID, "--quiet")
	require.NoError(t, err)
	assert.Equal(t, invited.ID+"\n", res.Stdout)

	_, err = run(t, env, "remove", invited.ID, "--project", projectID)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestInvite_UnknownEmail(t *testing.T) {
	env, projectID := setup(t)
	_, err := run(t, env, "create", "--project", projectID)
	require.NoError(t, err)

	_, err = run(t, env, "invite", "ghost@example.com", "--project", projectID)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestConfirm_Incomplete(t *testing.T) {
	env := clitest.SetupCLITest(t)

	_, err := run(t, env, "confirm", "--team", "t1")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}
