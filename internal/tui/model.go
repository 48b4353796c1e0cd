// Package tui is the interactive terminal client: a sign-in screen, the
// project dashboard and a project detail screen.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/faena/internal/app"
	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/debounce"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/tui/state"
)

// Model represents the application state for the TUI
type Model struct {
	ctx  context.Context
	app  *app.App
	keys config.KeyMappings

	route    session.Route
	width    int
	height   int
	showHelp bool

	auth          *authForm
	dashboard     *dashboard
	detail        *projectDetail
	notifications *state.NotificationState

	search      *debounce.Debouncer[searchRequest]
	projectsSeq uint64
	tasksSeq    uint64
}

// dashboard is the project list screen
type dashboard struct {
	projects []*models.Project
	visible  []*models.Project
	status   string
	sort     pipeline.ProjectSort
	search   *state.SearchState
	cursor   state.ListCursor
	loading  bool
}

func newDashboard() *dashboard {
	return &dashboard{
		status: pipeline.FilterAll,
		sort:   pipeline.SortNewest,
		search: state.NewSearchState(),
	}
}

// refresh reapplies the list pipeline to the loaded projects
func (d *dashboard) refresh() {
	d.visible = pipeline.Projects(d.projects, pipeline.ProjectQuery{
		Search: d.search.Applied,
		Status: d.status,
		Sort:   d.sort,
	})
	d.cursor.Clamp(len(d.visible))
}

func (d *dashboard) selected() *models.Project {
	if len(d.visible) == 0 {
		return nil
	}
	return d.visible[d.cursor.Index()]
}

// replace swaps in an updated copy of a loaded project
func (d *dashboard) replace(p *models.Project) {
	for i, existing := range d.projects {
		if existing.ID == p.ID {
			d.projects[i] = p
		}
	}
	d.refresh()
}

// projectDetail is the screen for one project
type projectDetail struct {
	project  *models.Project
	tasks    []*models.Task
	visible  []*models.Task
	status   string
	priority string
	sort     pipeline.TaskSort
	search   *state.SearchState
	cursor   state.ListCursor
	editor   *state.StatusEditor
	loading  bool

	showMembers    bool
	members        []*models.EnrichedMembership
	membersLoaded  bool
	membersLoading bool
	memberCursor   state.ListCursor
	memberSaving   bool
}

func newProjectDetail(p *models.Project) *projectDetail {
	return &projectDetail{
		project:  p,
		status:   pipeline.FilterAll,
		priority: pipeline.FilterAll,
		sort:     pipeline.SortCreated,
		search:   state.NewSearchState(),
		editor:   state.NewStatusEditor(p.Status),
	}
}

func (d *projectDetail) refresh() {
	d.visible = pipeline.Tasks(d.tasks, pipeline.TaskQuery{
		Search:   d.search.Applied,
		Status:   d.status,
		Priority: d.priority,
		Sort:     d.sort,
	})
	d.cursor.Clamp(len(d.visible))
}

// InitialModel creates the TUI model. The route starts at the dashboard
// and is redirected to the sign-in screen when nobody is signed in.
func InitialModel(ctx context.Context, a *app.App, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		ctx:           ctx,
		app:           a,
		keys:          cfg.KeyMappings,
		auth:          newAuthForm(),
		dashboard:     newDashboard(),
		notifications: state.NewNotificationState(),
		search:        debounce.New[searchRequest](cfg.SearchDebounce),
	}
	m.route = a.Session.Route(session.RouteDashboard)
	if m.route == session.RouteDashboard {
		m.projectsSeq = 1
		m.dashboard.loading = true
	}
	return m
}

// Init starts listening for settled searches and loads the first screen.
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSearch(m.ctx, m.search)}
	if m.route.IsAuthScreen() {
		cmds = append(cmds, m.auth.focus())
	} else {
		cmds = append(cmds, m.fetchProjects(m.projectsSeq))
	}
	return tea.Batch(cmds...)
}

// Close stops the search debouncer
func (m Model) Close() {
	m.search.Stop()
}

// activeSearch returns the search box of the current screen
func (m *Model) activeSearch() (*state.SearchState, searchTarget) {
	if m.route == session.RouteProject && m.detail != nil {
		return m.detail.search, searchTasks
	}
	return m.dashboard.search, searchProjects
}
