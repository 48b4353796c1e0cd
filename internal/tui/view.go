package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/tui/notifications"
	"github.com/thenoetrevino/faena/internal/tui/state"
)

// View renders the current screen.
// Required by tea.Model interface
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	var body string
	switch {
	case m.route.IsAuthScreen():
		body = m.viewAuth()
	case m.showHelp:
		body = m.viewHelp()
	case m.route == session.RouteProject && m.detail != nil:
		body = m.viewDetail()
	default:
		body = m.viewDashboard()
	}

	sections := []string{m.viewHeader(), body}
	if m.notifications.HasAny() {
		var lines []string
		for _, n := range m.notifications.All() {
			lines = append(lines, notifications.RenderInlineFromState(n))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, subtleStyle().Render(m.footer()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	header := titleStyle().Render("faena")
	if user := m.app.Session.User(); user != nil {
		header += subtleStyle().Render(" · " + user.DisplayName())
	}
	return header + "\n"
}

func (m Model) footer() string {
	switch {
	case m.route.IsAuthScreen():
		return "tab next field · enter submit · ctrl+r switch sign in/register · ctrl+c quit"
	case m.detail != nil && m.detail.editor.Mode() == state.Editing:
		return "←/→ choose · enter save · esc cancel"
	case m.route == session.RouteProject:
		return fmt.Sprintf("%s search · %s status · %s priority · %s sort · %s edit status · %s members · %s back · %s help",
			m.keys.Search, m.keys.CycleStatus, m.keys.CyclePriority, m.keys.CycleSort,
			m.keys.EditStatus, m.keys.ToggleMembers, m.keys.Back, m.keys.ShowHelp)
	default:
		return fmt.Sprintf("%s search · %s status · %s sort · %s open · %s reload · %s quit · %s help",
			m.keys.Search, m.keys.CycleStatus, m.keys.CycleSort, m.keys.Open, m.keys.Reload, m.keys.Quit, m.keys.ShowHelp)
	}
}

func (m Model) viewAuth() string {
	f := m.auth
	title := "Sign in"
	if f.register {
		title = "Create account"
	}

	lines := []string{accentStyle().Render(title), ""}
	for i := 0; i < f.fields(); i++ {
		lines = append(lines, f.inputs[i].View())
	}
	if f.submitting {
		lines = append(lines, "", subtleStyle().Render("Signing in..."))
	}
	if f.err != nil {
		lines = append(lines, "", errorStyle().Render(f.err.Error()))
	}
	return panelStyle().Render(strings.Join(lines, "\n"))
}

func (m Model) viewSearch(s *state.SearchState) string {
	if !s.Editing && s.Query == "" {
		return ""
	}
	line := "/" + s.Query
	if s.Editing {
		line += "▌"
	}
	if s.Query != s.Applied {
		line += subtleStyle().Render("  (searching...)")
	}
	return line
}

func (m Model) viewDashboard() string {
	d := m.dashboard
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n",
		accentStyle().Render("Projects"),
		subtleStyle().Render(fmt.Sprintf("status: %s · sort: %s · %d shown", d.status, d.sort, len(d.visible))),
	)
	if s := m.viewSearch(d.search); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString("\n")

	switch {
	case d.loading && len(d.projects) == 0:
		b.WriteString(subtleStyle().Render("Loading projects..."))
	case len(d.visible) == 0:
		b.WriteString(subtleStyle().Render("No projects"))
	default:
		for i, p := range d.visible {
			row := fmt.Sprintf("%-32s %s %s → %s",
				truncate(p.Name, 32),
				pad(renderStatus(p.Status), 12),
				m.app.Dates.DisplayOr(p.StartDate, "-"),
				m.app.Dates.DisplayOr(p.EndDate, "-"),
			)
			b.WriteString(m.row(row, i == d.cursor.Index()) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewDetail() string {
	d := m.detail
	p := d.project
	var b strings.Builder

	b.WriteString(titleStyle().Render(p.Name) + "  ")
	b.WriteString(m.viewEditor())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", subtleStyle().Render(fmt.Sprintf("%s → %s",
		m.app.Dates.DisplayOr(p.StartDate, "-"), m.app.Dates.DisplayOr(p.EndDate, "-"))))
	if p.Description != "" {
		b.WriteString(normalStyle().Render(truncate(firstLine(p.Description), 80)) + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s  %s\n",
		accentStyle().Render("Tasks"),
		subtleStyle().Render(fmt.Sprintf("status: %s · priority: %s · sort: %s · %d shown",
			d.status, d.priority, d.sort, len(d.visible))),
	)
	if s := m.viewSearch(d.search); s != "" {
		b.WriteString(s + "\n")
	}

	var tasks strings.Builder
	switch {
	case d.loading && len(d.tasks) == 0:
		tasks.WriteString(subtleStyle().Render("Loading tasks..."))
	case len(d.visible) == 0:
		tasks.WriteString(subtleStyle().Render("No tasks"))
	default:
		for i, t := range d.visible {
			row := fmt.Sprintf("%-36s %-12s %s %s",
				truncate(t.Title, 36),
				t.Status.Label(),
				pad(renderPriority(t.Priority), 9),
				m.app.Dates.DisplayOr(t.DueDate, ""),
			)
			tasks.WriteString(m.row(row, i == d.cursor.Index()) + "\n")
		}
	}

	list := tasks.String()
	if d.showMembers {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.viewMembers())
	}
	b.WriteString(list)
	return b.String()
}

func (m Model) viewEditor() string {
	e := m.detail.editor
	switch e.Mode() {
	case state.Editing:
		var opts []string
		for _, s := range models.ProjectStatuses {
			if s == e.Choice() {
				opts = append(opts, selectedStyle().Render(" "+s.Label()+" "))
			} else {
				opts = append(opts, " "+s.Label()+" ")
			}
		}
		out := "‹" + strings.Join(opts, "|") + "›"
		if err := e.Err(); err != nil {
			out += " " + errorStyle().Render(err.Error())
		}
		return out
	case state.Saving:
		return renderStatus(e.Choice()) + subtleStyle().Render(" saving...")
	default:
		return renderStatus(e.Current())
	}
}

func (m Model) viewMembers() string {
	d := m.detail
	lines := []string{accentStyle().Render("Members")}
	switch {
	case d.membersLoading:
		lines = append(lines, subtleStyle().Render("Loading..."))
	case len(d.members) == 0:
		lines = append(lines, subtleStyle().Render("No members"))
	default:
		for i, member := range d.members {
			line := member.Label()
			if member.IsCurrentUser {
				line += subtleStyle().Render(" (you)")
			}
			if !member.Confirmed {
				line += subtleStyle().Render(" invited")
			}
			lines = append(lines, m.row(line, i == d.memberCursor.Index()))
		}
	}
	return panelStyle().Render(strings.Join(lines, "\n"))
}

func (m Model) viewHelp() string {
	k := m.keys
	rows := [][2]string{
		{k.Up + "/" + k.Down, "move"},
		{k.Search, "search (applies after a pause)"},
		{k.CycleStatus, "cycle status filter"},
		{k.CycleSort, "cycle sort"},
		{k.CyclePriority, "cycle priority filter (project)"},
		{k.Open, "open project"},
		{k.EditStatus, "edit project status"},
		{k.ToggleMembers, "show team members"},
		{k.PrevMember + "/" + k.NextMember, "select member"},
		{k.RemoveMember, "remove selected member"},
		{k.PromoteMember, "make selected member an owner"},
		{k.Reload, "reload"},
		{k.Back, "back"},
		{"L", "sign out"},
		{k.Quit, "quit"},
	}
	lines := []string{accentStyle().Render("Keys"), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-8s %s", r[0], r[1]))
	}
	return panelStyle().Render(strings.Join(lines, "\n"))
}

func (m Model) row(text string, selected bool) string {
	if selected {
		return selectedStyle().Render("> " + text)
	}
	return "  " + text
}

// pad right-pads styled text to a visible width
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
