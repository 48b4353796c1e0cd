package task

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/models"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
	clitest "github.com/thenoetrevino/faena/internal/testutil/cli"
)

type taskJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate"`
	ProjectID string `json:"projectId"`
	CreatedBy string `json:"createdBy"`
	UpdatedBy string `json:"updatedBy"`
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

func setupProject(t *testing.T) (*clitest.Env, string) {
	t.Helper()
	env := clitest.SetupCLITest(t)
	p, err := env.App.ProjectService.Create(context.Background(), projectservice.CreateProjectRequest{
		Name:      "Tasks Home",
		ManagerID: env.User.ID,
	})
	require.NoError(t, err)
	return env, p.ID
}

func createTask(t *testing.T, env *clitest.Env, projectID string, args ...string) taskJSON {
	t.Helper()
	args = append([]string{"create", "--project", projectID, "--json"}, args...)
	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), args)
	require.NoError(t, err, "stderr: %s", res.Stderr)
	return decode[taskJSON](t, res.Stdout)
}

// ============================================================================
// Create
// ============================================================================

func TestCreate_FixBug(t *testing.T) {
	env, projectID := setupProject(t)

	task := createTask(t, env, projectID, "--title", "Fix bug", "--priority", "high", "--due", "15.03.2026")

	assert.Equal(t, "Fix bug", task.Title)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, projectID, task.ProjectID)
	assert.Equal(t, env.User.ID, task.CreatedBy)
	assert.Equal(t, "15.03.2026", env.App.Dates.Display(task.DueDate))
}

func TestCreate_ProjectFromEnv(t *testing.T) {
	env, projectID := setupProject(t)
	t.Setenv(cli.ProjectEnv, projectID)

	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"create", "--title", "From env", "--quiet"})
	require.NoError(t, err)

	task, err := env.App.TaskService.Get(context.Background(), strings.TrimSpace(res.Stdout))
	require.NoError(t, err)
	assert.Equal(t, projectID, task.ProjectID)
}

func TestCreate_Errors(t *testing.T) {
	env, projectID := setupProject(t)
	t.Setenv(cli.ProjectEnv, "")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing title", []string{"create", "--project", projectID}, cli.ExitUsage},
		{"missing project", []string{"create", "--title", "X"}, cli.ExitUsage},
		{"bad priority", []string{"create", "--project", projectID, "--title", "X", "--priority", "urgent"}, cli.ExitValidation},
		{"bad status", []string{"create", "--project", projectID, "--title", "X", "--status", "blocked"}, cli.ExitValidation},
		{"bad due date", []string{"create", "--project", projectID, "--title", "X", "--due", "someday"}, cli.ExitValidation},
		{"unknown project", []string{"create", "--project", "bogus", "--title", "X"}, cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

// ============================================================================
// List
// ============================================================================

func TestList_Pipeline(t *testing.T) {
	env, projectID := setupProject(t)

	createTask(t, env, projectID, "--title", "Write docs", "--priority", "low")
	createTask(t, env, projectID, "--title", "Fix login", "--priority", "critical", "--status", "in_progress")
	createTask(t, env, projectID, "--title", "Fix logout", "--priority", "high")

	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"list", "--project", projectID, "--sort", "priority", "--json"})
	require.NoError(t, err)
	tasks := decode[[]taskJSON](t, res.Stdout)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Fix login", tasks[0].Title)
	assert.Equal(t, "Fix logout", tasks[1].Title)
	assert.Equal(t, "Write docs", tasks[2].Title)

	res, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"list", "--project", projectID, "--search", "fix", "--status", "todo", "--json"})
	require.NoError(t, err)
	tasks = decode[[]taskJSON](t, res.Stdout)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix logout", tasks[0].Title)

	res, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"list", "--project", projectID, "--priority", "low", "--quiet"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(res.Stdout), 1)

	_, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"list", "--project", projectID, "--sort", "alphabetical"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

// ============================================================================
// Update / Start / Done
// ============================================================================

func TestUpdate(t *testing.T) {
	env, projectID := setupProject(t)
	task := createTask(t, env, projectID, "--title", "Fix bug", "--due", "15.03.2026")

	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"update", task.ID, "--priority", "critical", "--due", "", "--json"})
	require.NoError(t, err)
	updated := decode[taskJSON](t, res.Stdout)
	assert.Equal(t, "critical", updated.Priority)
	assert.Empty(t, updated.DueDate)
	assert.Equal(t, "Fix bug", updated.Title)
	assert.Equal(t, env.User.ID, updated.UpdatedBy)

	_, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"update", task.ID})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"update", task.ID, "--status", "blocked"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestStartAndDone(t *testing.T) {
	env, projectID := setupProject(t)
	task := createTask(t, env, projectID, "--title", "Ship it")

	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"start", task.ID})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "started")

	got, err := env.App.TaskService.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, got.Status)

	_, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"done", task.ID, "--quiet"})
	require.NoError(t, err)

	got, err = env.App.TaskService.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, got.Status)
}

// ============================================================================
// Show / Delete
// ============================================================================

func TestShow(t *testing.T) {
	env, projectID := setupProject(t)
	task := createTask(t, env, projectID, "--title", "Read me", "--description", "Steps to *reproduce*")

	res, err := clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"show", task.ID})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "Read me")
	assert.Contains(t, res.Stdout, "reproduce")

	_, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"show", "nope"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestDelete(t *testing.T) {
	env, projectID := setupProject(t)
	task := createTask(t, env, projectID, "--title", "Temporary")

	res, err := clitest.ExecuteCLICommandWithInput(t, env.App, TaskCmd(), []string{"delete", task.ID}, "no\n")
	require.NoError(t, err)
	assert.Contains(t, res.Stderr, "Deletion cancelled")

	res, err = clitest.ExecuteCLICommand(t, env.App, TaskCmd(), []string{"delete", task.ID, "--force"})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "deleted")

	_, err = env.App.TaskService.Get(context.Background(), task.ID)
	assert.ErrorIs(t, err, taskservice.ErrTaskNotFound)
}
