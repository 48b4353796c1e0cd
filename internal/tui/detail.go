package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/tui/state"
)

func (m *Model) handleDetailKey(msg tea.KeyPressMsg) tea.Cmd {
	d := m.detail

	switch msg.String() {
	case m.keys.Up, "up":
		d.cursor.Move(-1, len(d.visible))
	case m.keys.Down, "down":
		d.cursor.Move(1, len(d.visible))
	case m.keys.CycleStatus:
		d.status = pipeline.NextTaskStatusFilter(d.status)
		d.refresh()
	case m.keys.CyclePriority:
		d.priority = pipeline.NextTaskPriorityFilter(d.priority)
		d.refresh()
	case m.keys.CycleSort:
		d.sort = pipeline.NextTaskSort(d.sort)
		d.refresh()
	case m.keys.Reload:
		return m.reloadTasks()
	case m.keys.EditStatus:
		d.editor.Edit()
	case m.keys.ToggleMembers:
		return m.toggleMembers()
	case m.keys.PrevMember:
		d.memberCursor.Move(-1, len(d.members))
	case m.keys.NextMember:
		d.memberCursor.Move(1, len(d.members))
	case m.keys.RemoveMember:
		return m.changeSelectedMember(false)
	case m.keys.PromoteMember:
		return m.changeSelectedMember(true)
	case m.keys.Back:
		m.closeProject()
	}
	return nil
}

// handleEditorKey drives the status editor. While saving, keys are ignored.
func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	e := m.detail.editor
	if e.Mode() != state.Editing {
		return nil
	}

	switch msg.String() {
	case "left", "h":
		e.Prev()
	case "right", "l", "tab":
		e.Next()
	case "esc":
		e.Cancel()
	case "enter":
		status, err := e.Save()
		if err != nil {
			return nil
		}
		return m.saveStatus(m.detail.project.ID, status)
	}
	return nil
}

func (m *Model) toggleMembers() tea.Cmd {
	d := m.detail
	if !d.project.HasTeam() {
		m.notifications.Add(state.LevelInfo, "This project has no team")
		return nil
	}
	d.showMembers = !d.showMembers
	if !d.showMembers || d.membersLoaded || d.membersLoading {
		return nil
	}
	d.membersLoading = true
	return m.loadMembers(d.project.TeamID)
}

// selectedMember is the highlighted row of the visible members panel
func (d *projectDetail) selectedMember() *models.EnrichedMembership {
	if !d.showMembers || !d.membersLoaded || len(d.members) == 0 {
		return nil
	}
	d.memberCursor.Clamp(len(d.members))
	return d.members[d.memberCursor.Index()]
}

// changeSelectedMember removes the selected member or promotes it to owner.
// Owner rows are left alone.
func (m *Model) changeSelectedMember(promote bool) tea.Cmd {
	d := m.detail
	member := d.selectedMember()
	if member == nil || d.memberSaving {
		return nil
	}
	if !member.Removable() {
		m.notifications.Add(state.LevelInfo, fmt.Sprintf("%s is an owner and cannot be changed", member.DisplayName))
		return nil
	}
	d.memberSaving = true
	if promote {
		return m.promoteMember(member)
	}
	return m.removeMember(member)
}

func (m *Model) closeProject() {
	m.search.Cancel()
	m.detail = nil
	m.route = m.app.Session.Route(session.RouteDashboard)
	m.dashboard.refresh()
}
