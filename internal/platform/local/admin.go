package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

var userAttributes = map[string]string{
	"$id":   "id",
	"name":  "name",
	"email": "email",
}

type admin struct {
	s *Store
}

func (a *admin) GetUser(ctx context.Context, id string) (*models.User, error) {
	return a.s.getUser(ctx, id)
}

// ListUsers supports equal queries on $id, name and email plus limit and offset.
// search matches name or email.
func (a *admin) ListUsers(ctx context.Context, search string, queries ...platform.Query) (*platform.UserList, error) {
	where := []string{"1 = 1"}
	var args []any
	limit, offset := DefaultListLimit, 0

	for _, q := range queries {
		switch q.Method {
		case platform.MethodEqual:
			col, ok := userAttributes[q.Attribute]
			if !ok || len(q.Values) == 0 {
				return nil, fmt.Errorf("unsupported user query on %q", q.Attribute)
			}
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Values)), ", ")
			where = append(where, fmt.Sprintf("%s IN (%s)", col, placeholders))
			args = append(args, q.Values...)
		case platform.MethodLimit:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid limit query")
			}
			limit = min(n, MaxListLimit)
		case platform.MethodOffset:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid offset query")
			}
			offset = n
		default:
			return nil, fmt.Errorf("unsupported user query method %q", q.Method)
		}
	}
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)")
		args = append(args, "%"+s+"%", "%"+s+"%")
	}

	cond := strings.Join(where, " AND ")
	list := &platform.UserList{Users: []*models.User{}}
	if err := a.s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE "+cond, args...).Scan(&list.Total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rows, err := a.s.db.QueryContext(ctx,
		"SELECT id, name, email FROM users WHERE "+cond+" ORDER BY created_at, id LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		list.Users = append(list.Users, u)
	}
	return list, rows.Err()
}

// CreateMembership adds a user to a team directly, already confirmed
func (a *admin) CreateMembership(ctx context.Context, teamID, userID string, roles []string) (*models.Membership, error) {
	if err := validRoles(roles); err != nil {
		return nil, err
	}
	if err := a.s.teamExists(ctx, teamID); err != nil {
		return nil, err
	}
	if _, err := a.s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	id := newID()
	_, err := a.s.db.ExecContext(ctx,
		"INSERT INTO memberships (id, team_id, user_id, roles, secret, confirmed, joined_at) VALUES (?, ?, ?, ?, ?, 1, ?)",
		id, teamID, userID, encodeStrings(roles), newID(), a.s.timestamp(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %s is already a member: %w", userID, platform.ErrConflict)
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return a.s.getMembership(ctx, teamID, id)
}

func (a *admin) UpdateMembershipRoles(ctx context.Context, teamID, membershipID string, roles []string) (*models.Membership, error) {
	if err := validRoles(roles); err != nil {
		return nil, err
	}
	res, err := a.s.db.ExecContext(ctx,
		"UPDATE memberships SET roles = ? WHERE id = ? AND team_id = ?", encodeStrings(roles), membershipID, teamID)
	if err != nil {
		return nil, fmt.Errorf("update membership roles: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("membership %s: %w", membershipID, platform.ErrNotFound)
	}
	return a.s.getMembership(ctx, teamID, membershipID)
}

// DeleteTeam removes a team and its memberships. A missing team is not an error.
func (a *admin) DeleteTeam(ctx context.Context, teamID string) error {
	if _, err := a.s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *Store) teamExists(ctx context.Context, teamID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM teams WHERE id = ?", teamID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("team %s: %w", teamID, platform.ErrNotFound)
	}
	return err
}

func slogRollback(err error) {
	slog.Error("failed to rollback transaction", "error", err)
}
