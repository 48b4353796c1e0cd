package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/debounce"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
)

// requestTimeout bounds every platform call made from the TUI
const requestTimeout = 15 * time.Second

// call runs fn with a bounded context derived from base
func call[T any](base context.Context, fn func(ctx context.Context) T) T {
	ctx, cancel := context.WithTimeout(base, requestTimeout)
	defer cancel()
	return fn(ctx)
}

// waitForSearch blocks until the debouncer settles and reports the request
func waitForSearch(ctx context.Context, d *debounce.Debouncer[searchRequest]) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-d.C():
			return searchSettledMsg(req)
		case <-ctx.Done():
			return nil
		}
	}
}

// reloadProjects fetches the user's projects, tagging the request so older
// responses are dropped
func (m *Model) reloadProjects() tea.Cmd {
	m.projectsSeq++
	m.dashboard.loading = true
	return m.fetchProjects(m.projectsSeq)
}

func (m *Model) fetchProjects(seq uint64) tea.Cmd {
	user := m.app.Session.User()
	if user == nil {
		return nil
	}
	base, projects := m.ctx, m.app.ProjectService
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			list, err := projects.Load(ctx, user.ID)
			return projectsLoadedMsg{seq: seq, projects: list, err: err}
		})
	}
}

// reloadTasks fetches the open project's tasks
func (m *Model) reloadTasks() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	m.tasksSeq++
	seq := m.tasksSeq
	projectID := m.detail.project.ID
	m.detail.loading = true

	base, tasks := m.ctx, m.app.TaskService
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			list, err := tasks.List(ctx, projectID, pipeline.TaskQuery{})
			return tasksLoadedMsg{seq: seq, projectID: projectID, tasks: list, err: err}
		})
	}
}

func (m *Model) loadMembers(teamID string) tea.Cmd {
	base, teams, user := m.ctx, m.app.TeamService, m.app.Session.User()
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			members, err := teams.Members(ctx, teamID, user)
			return membersLoadedMsg{teamID: teamID, members: members, err: err}
		})
	}
}

func (m *Model) removeMember(member *models.EnrichedMembership) tea.Cmd {
	base, teams := m.ctx, m.app.TeamService
	target := member.Membership
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			err := teams.RemoveMember(ctx, &target)
			return memberChangedMsg{teamID: target.TeamID, name: member.DisplayName, verb: "removed", err: err}
		})
	}
}

func (m *Model) promoteMember(member *models.EnrichedMembership) tea.Cmd {
	base, teams := m.ctx, m.app.TeamService
	target := member.Membership
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			_, err := teams.ChangeMemberRole(ctx, &target, models.RoleOwner)
			return memberChangedMsg{teamID: target.TeamID, name: member.DisplayName, verb: "made owner", err: err}
		})
	}
}

func (m *Model) saveStatus(projectID string, status models.ProjectStatus) tea.Cmd {
	base, projects := m.ctx, m.app.ProjectService
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			project, err := projects.UpdateStatus(ctx, projectID, string(status))
			return statusSavedMsg{projectID: projectID, project: project, err: err}
		})
	}
}

func (m *Model) submitAuth(register bool, email, password, name string) tea.Cmd {
	base, gate := m.ctx, m.app.Session
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			var (
				user *models.User
				err  error
			)
			if register {
				user, err = gate.Register(ctx, email, password, name)
			} else {
				user, err = gate.Login(ctx, email, password)
			}
			return authResultMsg{user: user, err: err}
		})
	}
}

func (m *Model) logout() tea.Cmd {
	base, gate := m.ctx, m.app.Session
	return func() tea.Msg {
		return call(base, func(ctx context.Context) tea.Msg {
			return loggedOutMsg{err: gate.Logout(ctx)}
		})
	}
}
