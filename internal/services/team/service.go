package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/thenoetrevino/faena/internal/converters"
	"github.com/thenoetrevino/faena/internal/directory"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// DefaultTeamName is used when the project has no name
const DefaultTeamName = "Project team"

// Service defines team and membership operations
type Service interface {
	CreateForProject(ctx context.Context, projectID string) (*models.Team, error)
	Members(ctx context.Context, teamID string, current *models.User) ([]*models.EnrichedMembership, error)
	Invite(ctx context.Context, teamID, email string, roles []string) (*models.Membership, error)
	Remove(ctx context.Context, teamID, membershipID string) error
	RemoveMember(ctx context.Context, m *models.Membership) error
	ChangeRole(ctx context.Context, teamID, membershipID, role string) (*models.Membership, error)
	ChangeMemberRole(ctx context.Context, m *models.Membership, role string) (*models.Membership, error)
	Confirm(ctx context.Context, teamID, membershipID, userID, secret string) (*models.Membership, error)
}

// emailFinder resolves invitees
type emailFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// usersIndexer prefetches the directory
type usersIndexer interface {
	UsersMap(ctx context.Context) map[string]*models.User
}

// evictor is implemented by directories that cache users
type evictor interface {
	Evict(ctx context.Context, id string)
}

// Deps bundles what the team service needs
type Deps struct {
	Teams              platform.Teams
	Admin              platform.Admin
	Databases          platform.Databases
	ProjectsCollection string
	Directory          directory.Directory
	Finder             emailFinder
	// Index, when set, prefetches the whole directory before enrichment
	Index usersIndexer
}

type service struct {
	teams    platform.Teams
	admin    platform.Admin
	docs     platform.Databases
	projects string
	dir      directory.Directory
	finder   emailFinder
	index    usersIndexer
}

// NewService creates a new team service
func NewService(deps Deps) Service {
	return &service{
		teams:    deps.Teams,
		admin:    deps.Admin,
		docs:     deps.Databases,
		projects: deps.ProjectsCollection,
		dir:      deps.Directory,
		finder:   deps.Finder,
		index:    deps.Index,
	}
}

// CreateForProject creates a team named after the project and links it.
// Granting the team read access is best-effort.
func (s *service) CreateForProject(ctx context.Context, projectID string) (*models.Team, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrInvalidProjectID
	}

	doc, err := s.docs.GetDocument(ctx, s.projects, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	project := converters.ProjectToModel(doc)
	if project.HasTeam() {
		return nil, ErrProjectHasTeam
	}

	name := strings.TrimSpace(project.Name)
	if name == "" {
		name = DefaultTeamName
	}
	team, err := s.teams.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if _, err := s.docs.UpdateDocument(ctx, s.projects, projectID,
		map[string]any{converters.AttrTeamID: team.ID}, nil); err != nil {
		return team, fmt.Errorf("failed to link team to project: %w", err)
	}

	teamRead := platform.Read(platform.RoleTeam(team.ID))
	if !slices.Contains(doc.Permissions, teamRead) {
		permissions := append(slices.Clone(doc.Permissions), teamRead)
		if _, err := s.docs.UpdateDocument(ctx, s.projects, projectID, map[string]any{}, permissions); err != nil {
			slog.Warn("failed to grant team read access", "project", projectID, "team", team.ID, "error", err)
		}
	}

	return team, nil
}

// Members lists and enriches a team's memberships
func (s *service) Members(ctx context.Context, teamID string, current *models.User) ([]*models.EnrichedMembership, error) {
	memberships, err := s.list(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var index map[string]*models.User
	if s.index != nil {
		index = s.index.UsersMap(ctx)
	}
	return Enrich(ctx, memberships, current, index, s.dir), nil
}

// Invite adds the user with the given email to the team. When the platform
// reports a failure the memberships are re-read: an existing membership for
// the user counts as success.
func (s *service) Invite(ctx context.Context, teamID, email string, roles []string) (*models.Membership, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, ErrInvalidTeamID
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(roles) == 0 {
		roles = []string{models.RoleMember}
	}
	for _, role := range roles {
		if !models.ValidRole(role) {
			return nil, ErrInvalidRole
		}
	}

	user, err := s.finder.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// the finder read the current record, so a cached copy may be stale
	if c, ok := s.dir.(evictor); ok {
		c.Evict(ctx, user.ID)
	}

	m, err := s.admin.CreateMembership(ctx, teamID, user.ID, roles)
	if err == nil {
		return m, nil
	}

	memberships, listErr := s.teams.ListMemberships(ctx, teamID)
	if listErr == nil {
		for _, existing := range memberships {
			if existing.UserID == user.ID {
				slog.Info("invite failed but user is already a member", "team", teamID, "user", user.ID, "error", err)
				return existing, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to invite %s: %w", email, err)
}

// Remove looks the membership up by ID and removes it with RemoveMember
func (s *service) Remove(ctx context.Context, teamID, membershipID string) error {
	m, err := s.find(ctx, teamID, membershipID)
	if err != nil {
		return err
	}
	return s.RemoveMember(ctx, m)
}

// RemoveMember deletes an already loaded membership. Owner memberships are
// rejected before any platform call.
func (s *service) RemoveMember(ctx context.Context, m *models.Membership) error {
	if err := checkMutable(m); err != nil {
		return err
	}
	if err := s.teams.DeleteMembership(ctx, m.TeamID, m.ID); err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ChangeRole looks the membership up by ID and changes it with ChangeMemberRole
func (s *service) ChangeRole(ctx context.Context, teamID, membershipID, role string) (*models.Membership, error) {
	if _, err := parseRole(role); err != nil {
		return nil, err
	}
	m, err := s.find(ctx, teamID, membershipID)
	if err != nil {
		return nil, err
	}
	return s.ChangeMemberRole(ctx, m, role)
}

// ChangeMemberRole replaces the roles of an already loaded membership.
// Owner memberships are rejected before any platform call.
func (s *service) ChangeMemberRole(ctx context.Context, m *models.Membership, role string) (*models.Membership, error) {
	role, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	if err := checkMutable(m); err != nil {
		return nil, err
	}

	updated, err := s.admin.UpdateMembershipRoles(ctx, m.TeamID, m.ID, []string{role})
	if err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	return updated, nil
}

func parseRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !models.ValidRole(role) {
		return "", ErrInvalidRole
	}
	return role, nil
}

// checkMutable rejects owner memberships and memberships missing their IDs
func checkMutable(m *models.Membership) error {
	switch {
	case m == nil || strings.TrimSpace(m.ID) == "":
		return ErrInvalidMembershipID
	case strings.TrimSpace(m.TeamID) == "":
		return ErrInvalidTeamID
	case m.IsOwner():
		return ErrOwnerImmutable
	}
	return nil
}

// Confirm accepts an invitation
func (s *service) Confirm(ctx context.Context, teamID, membershipID, userID, secret string) (*models.Membership, error) {
	for _, v := range []string{teamID, membershipID, userID, secret} {
		if strings.TrimSpace(v) == "" {
			return nil, ErrConfirmIncomplete
		}
	}
	m, err := s.teams.UpdateMembershipStatus(ctx, teamID, membershipID, userID, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm membership: %w", err)
	}
	return m, nil
}

func (s *service) list(ctx context.Context, teamID string) ([]*models.Membership, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, ErrInvalidTeamID
	}
	memberships, err := s.teams.ListMemberships(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return memberships, nil
}

func (s *service) find(ctx context.Context, teamID, membershipID string) (*models.Membership, error) {
	if strings.TrimSpace(membershipID) == "" {
		return nil, ErrInvalidMembershipID
	}
	memberships, err := s.list(ctx, teamID)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	for _, m := range memberships {
		if m.ID == membershipID {
			if m.TeamID == "" {
				m.TeamID = teamID
			}
			return m, nil
		}
	}
	return nil, ErrMembershipNotFound
}
