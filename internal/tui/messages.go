package tui

import "github.com/thenoetrevino/faena/internal/models"

// searchTarget names the list a search applies to
type searchTarget int

const (
	searchProjects searchTarget = iota
	searchTasks
)

// searchRequest is what the debouncer delivers once typing pauses
type searchRequest struct {
	target searchTarget
	query  string
	seq    uint64
}

type searchSettledMsg searchRequest

type projectsLoadedMsg struct {
	seq      uint64
	projects []*models.Project
	err      error
}

type tasksLoadedMsg struct {
	seq       uint64
	projectID string
	tasks     []*models.Task
	err       error
}

type membersLoadedMsg struct {
	teamID  string
	members []*models.EnrichedMembership
	err     error
}

type memberChangedMsg struct {
	teamID string
	name   string
	verb   string
	err    error
}

type statusSavedMsg struct {
	projectID string
	project   *models.Project
	err       error
}

type authResultMsg struct {
	user *models.User
	err  error
}

type loggedOutMsg struct {
	err error
}
