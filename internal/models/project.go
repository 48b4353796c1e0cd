package models

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project as stored by the platform
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

// ProjectStatuses lists the canonical statuses in display order
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted}

// projectStatusAliases maps user-facing and legacy spellings to canonical statuses.
// "archived" and "done" were written by older clients and mean completed.
var projectStatusAliases = map[string]ProjectStatus{
	"active":    ProjectActive,
	"on_hold":   ProjectOnHold,
	"on hold":   ProjectOnHold,
	"on-hold":   ProjectOnHold,
	"onhold":    ProjectOnHold,
	"completed": ProjectCompleted,
	"complete":  ProjectCompleted,
	"archived":  ProjectCompleted,
	"done":      ProjectCompleted,
}

// ParseProjectStatus resolves a status or one of its aliases.
// Returns false if the value is not a known project status.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	status, ok := projectStatusAliases[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// NormalizeProjectStatus returns the canonical status for known values and
// the original value, lowercased, for anything else.
func NormalizeProjectStatus(s string) ProjectStatus {
	if status, ok := ParseProjectStatus(s); ok {
		return status
	}
	return ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
}

// Label returns the human-readable form of the status ("on hold" instead of "on_hold")
func (s ProjectStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Project represents a project document.
// A project is owned by its manager and optionally shared with exactly one team.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"startDate,omitempty"` // canonical instant
	EndDate     string        `json:"endDate,omitempty"`   // canonical instant
	ManagerID   string        `json:"managerId"`
	TeamID      string        `json:"teamId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// GetID returns the project ID (used by quiet output)
func (p *Project) GetID() string {
	return p.ID
}

// HasTeam reports whether the project is linked to a team
func (p *Project) HasTeam() bool {
	return p.TeamID != ""
}
