package local

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/faena/internal/platform"
)

// roleSet is the set of roles a user acts with
type roleSet map[string]bool

// rolesFor returns any, users, user:<id> and team:<id> for each confirmed membership
func (s *Store) rolesFor(ctx context.Context, userID string) (roleSet, error) {
	roles := roleSet{
		platform.RoleAny:          true,
		"users":                   true,
		platform.RoleUser(userID): true,
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT team_id FROM memberships WHERE user_id = ? AND confirmed = 1", userID)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID string
		if err := rows.Scan(&teamID); err != nil {
			return nil, err
		}
		roles[platform.RoleTeam(teamID)] = true
	}
	return roles, rows.Err()
}

// allows reports whether any permission grants action to one of the roles.
// write grants both update and delete.
func (r roleSet) allows(permissions []string, action string) bool {
	for _, p := range permissions {
		a, role, ok := platform.ParsePermission(p)
		if !ok || !r[role] {
			continue
		}
		if a == action || (a == "write" && action != platform.ActionRead) {
			return true
		}
	}
	return false
}

// defaultPermissions grants the creator full access
func defaultPermissions(userID string) []string {
	role := platform.RoleUser(userID)
	return []string{platform.Read(role), platform.Update(role), platform.Delete(role)}
}

func validatePermissions(permissions []string) error {
	for _, p := range permissions {
		if _, _, ok := platform.ParsePermission(p); !ok {
			return fmt.Errorf("invalid permission %q", p)
		}
	}
	return nil
}
