package models

import (
	"slices"
	"time"
)

// Membership role tags
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Team groups users that share access to a project
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// Membership links a user to a team with a set of role tags
type Membership struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Roles     []string  `json:"roles"`
	Confirmed bool      `json:"confirmed"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// IsOwner reports whether the membership carries the owner role
func (m *Membership) IsOwner() bool {
	return slices.Contains(m.Roles, RoleOwner)
}

// GetID returns the membership ID (used by quiet output)
func (m *Membership) GetID() string {
	return m.ID
}

// EnrichedMembership is a membership with a resolved display name
type EnrichedMembership struct {
	Membership
	DisplayName   string `json:"displayName"`
	RoleLabel     string `json:"roleLabel"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// Removable reports whether the member may be removed or have its role changed.
// Owner memberships are immutable.
func (e *EnrichedMembership) Removable() bool {
	return !e.IsOwner()
}

// ValidRole reports whether role is a known membership role
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleMember
}

// Label returns the display name, marking owners
func (e *EnrichedMembership) Label() string {
	if e.IsOwner() {
		return e.DisplayName + " (owner)"
	}
	return e.DisplayName
}
