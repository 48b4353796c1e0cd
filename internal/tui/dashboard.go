package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/pipeline"
	"github.com/thenoetrevino/faena/internal/services/session"
)

func (m *Model) handleDashboardKey(msg tea.KeyPressMsg) tea.Cmd {
	d := m.dashboard

	switch msg.String() {
	case m.keys.Up, "up":
		d.cursor.Move(-1, len(d.visible))
	case m.keys.Down, "down":
		d.cursor.Move(1, len(d.visible))
	case m.keys.CycleStatus:
		d.status = pipeline.NextProjectStatusFilter(d.status)
		d.refresh()
	case m.keys.CycleSort:
		d.sort = pipeline.NextProjectSort(d.sort)
		d.refresh()
	case m.keys.Reload:
		return m.reloadProjects()
	case m.keys.Open:
		return m.openProject()
	case "L":
		return m.logout()
	}
	return nil
}

// openProject shows the selected project and loads its tasks
func (m *Model) openProject() tea.Cmd {
	project := m.dashboard.selected()
	if project == nil {
		return nil
	}
	m.detail = newProjectDetail(project)
	m.route = m.app.Session.Route(session.RouteProject)
	return m.reloadTasks()
}
