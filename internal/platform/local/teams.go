package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

type teams struct {
	c *client
}

const membershipColumns = `m.id, m.team_id, m.user_id, u.name, u.email, m.roles, m.confirmed, m.joined_at`

func scanMembership(scan func(dest ...any) error) (*models.Membership, error) {
	m := &models.Membership{}
	var roles, joined string
	if err := scan(&m.ID, &m.TeamID, &m.UserID, &m.UserName, &m.UserEmail, &roles, &m.Confirmed, &joined); err != nil {
		return nil, err
	}
	m.Roles = decodeStrings(roles)
	m.JoinedAt = parseTime(joined)
	return m, nil
}

// Create makes a team with the caller as its confirmed owner
func (t *teams) Create(ctx context.Context, name string) (*models.Team, error) {
	userID, err := t.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}

	s := t.c.store
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slogRollback(err)
		}
	}()

	now := s.timestamp()
	team := &models.Team{ID: newID(), Name: name, Total: 1, CreatedAt: parseTime(now)}
	if _, err := tx.ExecContext(ctx, "INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)", team.ID, team.Name, now); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO memberships (id, team_id, user_id, roles, secret, confirmed, joined_at) VALUES (?, ?, ?, ?, ?, 1, ?)",
		newID(), team.ID, userID, encodeStrings([]string{models.RoleOwner}), newID(), now,
	); err != nil {
		return nil, fmt.Errorf("create owner membership: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return team, nil
}

// List returns the teams the caller is a confirmed member of
func (t *teams) List(ctx context.Context) ([]*models.Team, error) {
	userID, err := t.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := t.c.store.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at,
		       (SELECT COUNT(*) FROM memberships c WHERE c.team_id = t.id AND c.confirmed = 1)
		FROM teams t
		JOIN memberships m ON m.team_id = t.id
		WHERE m.user_id = ? AND m.confirmed = 1
		ORDER BY t.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	result := []*models.Team{}
	for rows.Next() {
		team := &models.Team{}
		var created string
		if err := rows.Scan(&team.ID, &team.Name, &created, &team.Total); err != nil {
			return nil, err
		}
		team.CreatedAt = parseTime(created)
		result = append(result, team)
	}
	return result, rows.Err()
}

func (t *teams) ListMemberships(ctx context.Context, teamID string) ([]*models.Membership, error) {
	userID, err := t.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := t.c.store.membershipOf(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return t.c.store.listMemberships(ctx, teamID)
}

// DeleteMembership lets owners remove anyone and members remove themselves
func (t *teams) DeleteMembership(ctx context.Context, teamID, membershipID string) error {
	userID, err := t.c.currentUserID(ctx)
	if err != nil {
		return err
	}
	caller, err := t.c.store.membershipOf(ctx, teamID, userID)
	if err != nil {
		return err
	}
	target, err := t.c.store.getMembership(ctx, teamID, membershipID)
	if err != nil {
		return err
	}
	if !caller.IsOwner() && target.UserID != userID {
		return fmt.Errorf("remove membership %s: %w", membershipID, platform.ErrForbidden)
	}
	if _, err := t.c.store.db.ExecContext(ctx, "DELETE FROM memberships WHERE id = ?", membershipID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// UpdateMembershipStatus confirms an invitation with its secret
func (t *teams) UpdateMembershipStatus(ctx context.Context, teamID, membershipID, userID, secret string) (*models.Membership, error) {
	var storedUser, storedSecret string
	err := t.c.store.db.QueryRowContext(ctx,
		"SELECT user_id, secret FROM memberships WHERE id = ? AND team_id = ?", membershipID, teamID,
	).Scan(&storedUser, &storedSecret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership %s: %w", membershipID, platform.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if storedUser != userID || storedSecret != secret {
		return nil, fmt.Errorf("invalid membership secret: %w", platform.ErrUnauthorized)
	}

	if _, err := t.c.store.db.ExecContext(ctx,
		"UPDATE memberships SET confirmed = 1, joined_at = ? WHERE id = ?", t.c.store.timestamp(), membershipID,
	); err != nil {
		return nil, fmt.Errorf("confirm membership: %w", err)
	}
	return t.c.store.getMembership(ctx, teamID, membershipID)
}

// membershipOf returns the caller's membership, hiding teams they are not in
func (s *Store) membershipOf(ctx context.Context, teamID, userID string) (*models.Membership, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM memberships m JOIN users u ON u.id = m.user_id WHERE m.team_id = ? AND m.user_id = ?",
		teamID, userID)
	m, err := scanMembership(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", teamID, platform.ErrNotFound)
	}
	return m, err
}

func (s *Store) getMembership(ctx context.Context, teamID, membershipID string) (*models.Membership, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM memberships m JOIN users u ON u.id = m.user_id WHERE m.team_id = ? AND m.id = ?",
		teamID, membershipID)
	m, err := scanMembership(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership %s: %w", membershipID, platform.ErrNotFound)
	}
	return m, err
}

func (s *Store) listMemberships(ctx context.Context, teamID string) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+membershipColumns+" FROM memberships m JOIN users u ON u.id = m.user_id WHERE m.team_id = ? ORDER BY m.joined_at, m.id",
		teamID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	result := []*models.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func validRoles(roles []string) error {
	for _, r := range roles {
		if !models.ValidRole(r) {
			return fmt.Errorf("invalid role %q", r)
		}
	}
	if slices.Contains(roles, "") {
		return fmt.Errorf("empty role")
	}
	return nil
}
