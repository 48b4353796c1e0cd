package platform

import (
	"fmt"
	"regexp"
)

// Permission actions
const (
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var rePermission = regexp.MustCompile(`^(read|update|delete|write)\("([^"]+)"\)$`)

// RoleAny grants a permission to everyone
const RoleAny = "any"

// RoleUser scopes a permission to one user
func RoleUser(id string) string {
	return "user:" + id
}

// RoleTeam scopes a permission to members of a team
func RoleTeam(id string) string {
	return "team:" + id
}

func Read(role string) string {
	return fmt.Sprintf("%s(%q)", ActionRead, role)
}

func Update(role string) string {
	return fmt.Sprintf("%s(%q)", ActionUpdate, role)
}

func Delete(role string) string {
	return fmt.Sprintf("%s(%q)", ActionDelete, role)
}

// ParsePermission splits a permission string into its action and role
func ParsePermission(p string) (action, role string, ok bool) {
	m := rePermission.FindStringSubmatch(p)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
