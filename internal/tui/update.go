package tui

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/tui/state"
)

// Update handles all messages and updates the model.
// Required by tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	return m, cmd
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case searchSettledMsg:
		m.handleSearchSettled(msg)
		return waitForSearch(m.ctx, m.search)

	case projectsLoadedMsg:
		m.handleProjectsLoaded(msg)
		return nil

	case tasksLoadedMsg:
		m.handleTasksLoaded(msg)
		return nil

	case membersLoadedMsg:
		m.handleMembersLoaded(msg)
		return nil

	case memberChangedMsg:
		return m.handleMemberChanged(msg)

	case statusSavedMsg:
		m.handleStatusSaved(msg)
		return nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case loggedOutMsg:
		return m.handleLoggedOut(msg)
	}
	return nil
}

// handleKey dispatches key presses to the current screen
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.route.IsAuthScreen() {
		return m.handleAuthKey(msg)
	}

	search, target := m.activeSearch()
	if search.Editing {
		return m.handleSearchKey(msg, search, target)
	}
	if m.detail != nil && m.detail.editor.Mode() != state.Viewing {
		return m.handleEditorKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch msg.String() {
	case m.keys.ShowHelp:
		m.showHelp = true
		return nil
	case m.keys.Search:
		search.Start()
		return nil
	case m.keys.Quit:
		return tea.Quit
	}

	if m.route == session.RouteProject && m.detail != nil {
		return m.handleDetailKey(msg)
	}
	return m.handleDashboardKey(msg)
}

// handleSearchKey edits the query. Every change restarts the debounce
// window; the list only follows once typing pauses.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg, search *state.SearchState, target searchTarget) tea.Cmd {
	switch msg.String() {
	case "enter":
		search.Stop()
		m.search.Flush()
		return nil
	case "esc":
		m.search.Cancel()
		search.Clear()
		m.refreshList(target)
		return nil
	case "backspace":
		if search.Backspace() {
			m.search.Notify(searchRequest{target: target, query: search.Query, seq: search.Seq})
		}
		return nil
	}

	if msg.Text != "" && search.AppendText(msg.Text) {
		m.search.Notify(searchRequest{target: target, query: search.Query, seq: search.Seq})
	}
	return nil
}

func (m *Model) handleSearchSettled(msg searchSettledMsg) {
	var search *state.SearchState
	switch msg.target {
	case searchTasks:
		if m.detail == nil {
			return
		}
		search = m.detail.search
	default:
		search = m.dashboard.search
	}
	if !search.Settle(msg.query, msg.seq) {
		slog.Debug("dropping stale search", "query", msg.query)
		return
	}
	m.refreshList(msg.target)
}

func (m *Model) refreshList(target searchTarget) {
	if target == searchTasks {
		if m.detail != nil {
			m.detail.refresh()
		}
		return
	}
	m.dashboard.refresh()
}

func (m *Model) handleProjectsLoaded(msg projectsLoadedMsg) {
	if msg.seq != m.projectsSeq {
		return
	}
	m.dashboard.loading = false
	if msg.err != nil {
		m.notifications.Error(fmt.Errorf("loading projects: %w", msg.err))
		return
	}
	m.dashboard.projects = msg.projects
	m.dashboard.refresh()
}

func (m *Model) handleTasksLoaded(msg tasksLoadedMsg) {
	if m.detail == nil || msg.seq != m.tasksSeq || msg.projectID != m.detail.project.ID {
		return
	}
	m.detail.loading = false
	if msg.err != nil {
		m.notifications.Error(fmt.Errorf("loading tasks: %w", msg.err))
		return
	}
	m.detail.tasks = msg.tasks
	m.detail.refresh()
}

func (m *Model) handleMembersLoaded(msg membersLoadedMsg) {
	if m.detail == nil || msg.teamID != m.detail.project.TeamID {
		return
	}
	m.detail.membersLoading = false
	if msg.err != nil {
		m.notifications.Error(fmt.Errorf("loading members: %w", msg.err))
		return
	}
	m.detail.members = msg.members
	m.detail.membersLoaded = true
	m.detail.memberCursor.Clamp(len(msg.members))
}

// handleMemberChanged reports the outcome and re-reads the team
func (m *Model) handleMemberChanged(msg memberChangedMsg) tea.Cmd {
	if m.detail == nil || msg.teamID != m.detail.project.TeamID {
		return nil
	}
	m.detail.memberSaving = false
	if msg.err != nil {
		m.notifications.Error(fmt.Errorf("updating member: %w", msg.err))
		return nil
	}
	m.notifications.Add(state.LevelInfo, fmt.Sprintf("%s %s", msg.name, msg.verb))
	m.detail.membersLoading = true
	return m.loadMembers(msg.teamID)
}

func (m *Model) handleStatusSaved(msg statusSavedMsg) {
	if m.detail == nil || msg.projectID != m.detail.project.ID {
		return
	}
	if msg.err != nil {
		m.detail.editor.Failed(msg.err)
		m.notifications.Error(fmt.Errorf("saving status: %w", msg.err))
		return
	}
	m.detail.editor.Saved(msg.project.Status)
	m.detail.project = msg.project
	m.dashboard.replace(msg.project)
	m.notifications.Add(state.LevelInfo, "Status set to "+msg.project.Status.Label())
}
