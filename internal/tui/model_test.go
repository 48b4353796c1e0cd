package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
	"github.com/thenoetrevino/faena/internal/services/session"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
	"github.com/thenoetrevino/faena/internal/testutil"
	"github.com/thenoetrevino/faena/internal/tui/state"
)

func createProject(t *testing.T, env *testEnv, name, status string) *models.Project {
	t.Helper()
	p, err := env.app.ProjectService.Create(context.Background(), projectservice.CreateProjectRequest{
		Name:      name,
		Status:    status,
		ManagerID: env.user.ID,
	})
	require.NoError(t, err)
	return p
}

func createTask(t *testing.T, env *testEnv, projectID, title, priority string) *models.Task {
	t.Helper()
	task, err := env.app.TaskService.Create(context.Background(), taskservice.CreateTaskRequest{
		ProjectID: projectID,
		Title:     title,
		Priority:  priority,
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)
	return task
}

// openFirst opens the selected project and applies its task load
func openFirst(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(m, "enter")
	require.Equal(t, session.RouteProject, m.route)
	return run(t, m, cmd)
}

// ============================================================================
// Session Routing Tests
// ============================================================================

func TestInitialModel_AnonymousRoutesToLogin(t *testing.T) {
	env := setupAnonymous(t)
	m := newModel(t, env)

	assert.Equal(t, session.RouteLogin, m.route)
	assert.Contains(t, m.render(), "Sign in")

	// Dashboard keys do nothing on the sign-in screen
	m, _ = press(m, "f")
	assert.Equal(t, pipeline.FilterAll, m.dashboard.status)
}

func TestAuth_RegisterThenDashboard(t *testing.T) {
	env := setupAnonymous(t)
	m := newModel(t, env)

	m, _ = press(m, "ctrl+r")
	assert.Equal(t, session.RouteRegister, m.route)
	assert.True(t, m.auth.register)

	m = typeText(m, "new@example.com")
	m, _ = press(m, "enter")
	m = typeText(m, "password123")
	m, _ = press(m, "enter")
	m = typeText(m, "New User")

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.auth.submitting)

	m, cmd = update(m, cmd())
	assert.Equal(t, session.RouteDashboard, m.route)
	assert.False(t, m.auth.submitting)
	require.NotNil(t, cmd, "signing in should reload projects")

	m = run(t, m, cmd)
	assert.False(t, m.dashboard.loading)
	assert.Empty(t, m.dashboard.visible)
	assert.Equal(t, "New User", env.app.Session.User().Name)
}

func TestAuth_FailedLoginStaysOnForm(t *testing.T) {
	env := setupAnonymous(t)
	m := newModel(t, env)

	m = typeText(m, "nobody@example.com")
	m, _ = press(m, "enter")
	m = typeText(m, "wrongpass1")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)

	m, _ = update(m, cmd())
	assert.Equal(t, session.RouteLogin, m.route)
	assert.Error(t, m.auth.err)
	assert.False(t, m.auth.submitting)
}

func TestLogout_ReturnsToLogin(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Alpha", "")
	m := newModel(t, env)
	require.Len(t, m.dashboard.visible, 1)

	m, cmd := press(m, "L")
	m = run(t, m, cmd)

	assert.Equal(t, session.RouteLogin, m.route)
	assert.Empty(t, m.dashboard.projects)
	assert.Nil(t, env.app.Session.User())
}

// ============================================================================
// Dashboard Tests
// ============================================================================

func TestDashboard_LoadsProjects(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Alpha", "active")
	createProject(t, env, "Beta", "on_hold")

	m := newModel(t, env)

	assert.Equal(t, session.RouteDashboard, m.route)
	assert.False(t, m.dashboard.loading)
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, projectNames(m.dashboard.visible))

	view := m.render()
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "Beta")
}

func TestDashboard_CycleStatusAndSort(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Gamma", "completed")
	createProject(t, env, "Alpha", "active")
	createProject(t, env, "Beta", "on_hold")
	m := newModel(t, env)

	m, _ = press(m, "f")
	assert.Equal(t, "active", m.dashboard.status)
	assert.Equal(t, []string{"Alpha"}, projectNames(m.dashboard.visible))

	m, _ = press(m, "f")
	assert.Equal(t, []string{"Beta"}, projectNames(m.dashboard.visible))

	m, _ = press(m, "f")
	m, _ = press(m, "f")
	assert.Equal(t, pipeline.FilterAll, m.dashboard.status)
	assert.Len(t, m.dashboard.visible, 3)

	// newest -> oldest -> name
	m, _ = press(m, "s")
	m, _ = press(m, "s")
	assert.Equal(t, pipeline.SortName, m.dashboard.sort)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, projectNames(m.dashboard.visible))
}

func TestDashboard_CursorStaysInRange(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Alpha", "active")
	createProject(t, env, "Beta", "completed")
	m := newModel(t, env)

	m, _ = press(m, "j")
	m, _ = press(m, "j")
	assert.Equal(t, 1, m.dashboard.cursor.Index())

	// Filtering down to one project pulls the cursor back
	m, _ = press(m, "f")
	assert.Equal(t, 0, m.dashboard.cursor.Index())
}

func TestDashboard_StaleLoadIsDropped(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Alpha", "")
	m := newModel(t, env)

	m, cmd := press(m, "r")
	require.NotNil(t, cmd)
	assert.True(t, m.dashboard.loading)

	stale := projectsLoadedMsg{seq: m.projectsSeq - 1, projects: []*models.Project{{ID: "old", Name: "Old"}}}
	m, _ = update(m, stale)
	assert.True(t, m.dashboard.loading, "stale response must not finish the load")
	assert.Equal(t, []string{"Alpha"}, projectNames(m.dashboard.visible))

	m = run(t, m, cmd)
	assert.False(t, m.dashboard.loading)
	assert.Equal(t, []string{"Alpha"}, projectNames(m.dashboard.visible))
}

func TestDashboard_LoadErrorNotifies(t *testing.T) {
	env := setupSignedIn(t)
	m := newModel(t, env)

	m, _ = press(m, "r")
	m, _ = update(m, projectsLoadedMsg{seq: m.projectsSeq, err: errors.New("offline")})

	assert.False(t, m.dashboard.loading)
	require.True(t, m.notifications.HasAny())
	assert.Equal(t, state.LevelError, m.notifications.All()[0].Level)
	assert.Contains(t, m.render(), "offline")
}

// ============================================================================
// Search Tests
// ============================================================================

func TestDashboard_SearchIsDebounced(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Game night", "")
	createProject(t, env, "Frame work", "")
	createProject(t, env, "Other", "")
	m := newModel(t, env)

	m, _ = press(m, "/")
	require.True(t, m.dashboard.search.Editing)

	m = typeText(m, "ame")
	assert.Equal(t, "ame", m.dashboard.search.Query)
	assert.Len(t, m.dashboard.visible, 3, "list should not change until typing pauses")
	assert.Contains(t, m.render(), "searching")

	m = awaitSearch(t, m)
	assert.Equal(t, "ame", m.dashboard.search.Applied)
	assert.ElementsMatch(t, []string{"Game night", "Frame work"}, projectNames(m.dashboard.visible))
}

func TestDashboard_OutdatedSearchIsIgnored(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Game night", "")
	createProject(t, env, "Other", "")
	m := newModel(t, env)

	m, _ = press(m, "/")
	m = typeText(m, "game")
	outdated := searchSettledMsg{target: searchProjects, query: "g", seq: 1}

	m, _ = update(m, outdated)
	assert.Empty(t, m.dashboard.search.Applied)
	assert.Len(t, m.dashboard.visible, 2)
}

func TestDashboard_SearchEscClears(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Game night", "")
	createProject(t, env, "Other", "")
	m := newModel(t, env)

	m, _ = press(m, "/")
	m = typeText(m, "game")
	m = awaitSearch(t, m)
	require.Len(t, m.dashboard.visible, 1)
	require.True(t, m.dashboard.search.Editing)

	m, _ = press(m, "esc")
	assert.False(t, m.dashboard.search.Editing)
	assert.Empty(t, m.dashboard.search.Applied)
	assert.Len(t, m.dashboard.visible, 2)
}

// ============================================================================
// Project Detail Tests
// ============================================================================

func TestDetail_OpenShowsTasks(t *testing.T) {
	env := setupSignedIn(t)
	p := createProject(t, env, "Launch", "active")
	createTask(t, env, p.ID, "Write copy", "low")
	createTask(t, env, p.ID, "Fix bug", "critical")

	m := openFirst(t, newModel(t, env))

	require.NotNil(t, m.detail)
	assert.Equal(t, p.ID, m.detail.project.ID)
	assert.False(t, m.detail.loading)
	assert.ElementsMatch(t, []string{"Write copy", "Fix bug"}, taskTitles(m.detail.visible))
	assert.Contains(t, m.render(), "Launch")

	// created -> deadline -> priority
	m, _ = press(m, "s")
	m, _ = press(m, "s")
	assert.Equal(t, pipeline.SortPriority, m.detail.sort)
	assert.Equal(t, []string{"Fix bug", "Write copy"}, taskTitles(m.detail.visible))

	m, _ = press(m, "p")
	assert.Equal(t, "low", m.detail.priority)
	assert.Equal(t, []string{"Write copy"}, taskTitles(m.detail.visible))
}

func TestDetail_TaskLoadForOtherProjectIsDropped(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Launch", "")
	m, _ := press(newModel(t, env), "enter")

	m, _ = update(m, tasksLoadedMsg{seq: m.tasksSeq, projectID: "other", tasks: []*models.Task{{Title: "Elsewhere"}}})
	assert.True(t, m.detail.loading)
	assert.Empty(t, m.detail.visible)
}

func TestDetail_BackReturnsToDashboard(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Launch", "")
	m := openFirst(t, newModel(t, env))

	m, _ = press(m, "esc")
	assert.Equal(t, session.RouteDashboard, m.route)
	assert.Nil(t, m.detail)
}

func TestDetail_TaskSearchTargetsTasks(t *testing.T) {
	env := setupSignedIn(t)
	p := createProject(t, env, "Launch", "")
	createTask(t, env, p.ID, "Fix login", "")
	createTask(t, env, p.ID, "Write docs", "")
	m := openFirst(t, newModel(t, env))

	m, _ = press(m, "/")
	m = typeText(m, "login")
	m = awaitSearch(t, m)

	assert.Equal(t, []string{"Fix login"}, taskTitles(m.detail.visible))
	assert.Empty(t, m.dashboard.search.Applied)
}

// ============================================================================
// Status Editor Tests
// ============================================================================

func TestDetail_StatusEditorSaves(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Launch", "active")
	m := openFirst(t, newModel(t, env))

	m, _ = press(m, "e")
	assert.Equal(t, state.Editing, m.detail.editor.Mode())
	assert.Equal(t, models.ProjectActive, m.detail.editor.Choice())
	assert.Contains(t, m.render(), "on hold")

	m, _ = press(m, "right")
	assert.Equal(t, models.ProjectOnHold, m.detail.editor.Choice())

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, state.Saving, m.detail.editor.Mode())

	// Keys are ignored while saving
	m, _ = press(m, "right")
	assert.Equal(t, models.ProjectOnHold, m.detail.editor.Choice())

	m = run(t, m, cmd)
	assert.Equal(t, state.Viewing, m.detail.editor.Mode())
	assert.Equal(t, models.ProjectOnHold, m.detail.project.Status)
	assert.Equal(t, models.ProjectOnHold, m.dashboard.projects[0].Status)

	stored, err := env.app.ProjectService.Get(context.Background(), m.detail.project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectOnHold, stored.Status)
}

func TestDetail_StatusEditorFailureKeepsEditing(t *testing.T) {
	env := setupSignedIn(t)
	p := createProject(t, env, "Launch", "active")
	m := openFirst(t, newModel(t, env))

	m, _ = press(m, "e")
	m, _ = press(m, "right")
	m, _ = press(m, "enter")
	require.Equal(t, state.Saving, m.detail.editor.Mode())

	m, _ = update(m, statusSavedMsg{projectID: p.ID, err: errors.New("permission denied")})

	assert.Equal(t, state.Editing, m.detail.editor.Mode())
	assert.Error(t, m.detail.editor.Err())
	assert.Equal(t, models.ProjectActive, m.detail.editor.Current())
	assert.Equal(t, models.ProjectActive, m.detail.project.Status)
	assert.True(t, m.notifications.HasAny())
}

func TestDetail_StatusEditorCancel(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Launch", "active")
	m := openFirst(t, newModel(t, env))

	m, _ = press(m, "e")
	m, _ = press(m, "left")
	m, cmd := press(m, "esc")
	assert.Nil(t, cmd)
	assert.Equal(t, state.Viewing, m.detail.editor.Mode())
	assert.Equal(t, session.RouteProject, m.route, "esc closes the editor, not the project")
}

// ============================================================================
// Members Tests
// ============================================================================

func TestDetail_MembersWithoutTeam(t *testing.T) {
	env := setupSignedIn(t)
	createProject(t, env, "Solo", "")
	m := openFirst(t, newModel(t, env))

	m, cmd := press(m, "m")
	assert.Nil(t, cmd)
	assert.False(t, m.detail.showMembers)
	require.True(t, m.notifications.HasAny())
	assert.Equal(t, "This project has no team", m.notifications.All()[0].Message)
}

func TestDetail_MembersLoadOnce(t *testing.T) {
	env := setupSignedIn(t)
	p := createProject(t, env, "Launch", "")
	_, err := env.app.TeamService.CreateForProject(context.Background(), p.ID)
	require.NoError(t, err)

	m := openFirst(t, newModel(t, env))
	require.True(t, m.detail.project.HasTeam())

	m, cmd := press(m, "m")
	require.NotNil(t, cmd)
	assert.True(t, m.detail.membersLoading)

	m = run(t, m, cmd)
	require.Len(t, m.detail.members, 1)
	assert.True(t, m.detail.members[0].IsCurrentUser)
	assert.Contains(t, m.render(), "Tui User (owner)")

	m, _ = press(m, "m")
	m, cmd = press(m, "m")
	assert.Nil(t, cmd, "members are only fetched once")
	assert.True(t, m.detail.showMembers)
}

// openTeamPanel opens the first project with its team of the signed-in
// owner and one invited member, and shows the members panel
func openTeamPanel(t *testing.T, env *testEnv) Model {
	t.Helper()
	ctx := context.Background()
	p := createProject(t, env, "Launch", "")
	team, err := env.app.TeamService.CreateForProject(ctx, p.ID)
	require.NoError(t, err)
	testutil.SignUp(t, env.store, "bo@example.com", "Bo")
	_, err = env.app.TeamService.Invite(ctx, team.ID, "bo@example.com", nil)
	require.NoError(t, err)

	m := openFirst(t, newModel(t, env))
	m, cmd := press(m, "m")
	m = run(t, m, cmd)
	require.Len(t, m.detail.members, 2)
	require.True(t, m.detail.members[0].IsOwner())
	return m
}

func TestDetail_MemberOwnerRowIsLocked(t *testing.T) {
	env := setupSignedIn(t)
	m := openTeamPanel(t, env)

	m, cmd := press(m, "x")
	assert.Nil(t, cmd)
	assert.False(t, m.detail.memberSaving)
	require.True(t, m.notifications.HasAny())
	assert.Contains(t, m.notifications.All()[0].Message, "cannot be changed")

	m, cmd = press(m, "R")
	assert.Nil(t, cmd)
	assert.Len(t, m.detail.members, 2)
}

func TestDetail_RemoveSelectedMember(t *testing.T) {
	env := setupSignedIn(t)
	m := openTeamPanel(t, env)

	m, _ = press(m, "]")
	assert.Equal(t, 1, m.detail.memberCursor.Index())
	assert.Contains(t, m.render(), "> Bo")

	m, cmd := press(m, "x")
	require.NotNil(t, cmd)
	assert.True(t, m.detail.memberSaving)

	m, cmd = update(m, cmd())
	assert.False(t, m.detail.memberSaving)
	assert.True(t, m.detail.membersLoading)
	m = run(t, m, cmd)

	require.Len(t, m.detail.members, 1)
	assert.True(t, m.detail.members[0].IsCurrentUser)
	assert.Equal(t, 0, m.detail.memberCursor.Index())
	assert.Contains(t, m.notifications.All()[0].Message, "removed")
}

func TestDetail_PromoteSelectedMember(t *testing.T) {
	env := setupSignedIn(t)
	m := openTeamPanel(t, env)

	m, _ = press(m, "]")
	m, cmd := press(m, "R")
	require.NotNil(t, cmd)

	m, cmd = update(m, cmd())
	m = run(t, m, cmd)

	require.Len(t, m.detail.members, 2)
	for _, member := range m.detail.members {
		assert.True(t, member.IsOwner(), "%s should be an owner", member.DisplayName)
	}

	m, cmd = press(m, "x")
	assert.Nil(t, cmd, "a promoted member is locked")
}

// ============================================================================
// Help Tests
// ============================================================================

func TestHelp_ToggleAndDismiss(t *testing.T) {
	env := setupSignedIn(t)
	m := newModel(t, env)

	m, _ = press(m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.render(), "Keys")

	m, _ = press(m, "f")
	assert.False(t, m.showHelp)
	assert.Equal(t, pipeline.FilterAll, m.dashboard.status, "the dismissing key is swallowed")
}
