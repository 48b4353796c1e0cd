package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/faena/internal/converters"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
	"github.com/thenoetrevino/faena/internal/platform"
)

// MaxNameLength is the longest accepted project name, in characters
const MaxNameLength = 100

// listLimit bounds a single list request
const listLimit = 5000

// Service defines all project-related business operations
type Service interface {
	// Read operations
	Load(ctx context.Context, userID string) ([]*models.Project, error)
	List(ctx context.Context, userID string, q pipeline.ProjectQuery) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)

	// Write operations
	Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Project, error)
	Delete(ctx context.Context, id string, opts DeleteOptions) (*DeleteResult, error)
}

// CreateProjectRequest encapsulates data for creating a project.
// Dates accept dd.mm.yyyy or any generic date string.
type CreateProjectRequest struct {
	Name        string
	Description string
	Status      string
	StartDate   string
	EndDate     string
	ManagerID   string
}

// UpdateProjectRequest encapsulates data for updating a project.
// Nil fields are left unchanged; an empty EndDate clears it.
type UpdateProjectRequest struct {
	ID          string
	Name        *string
	Description *string
	Status      *string
	StartDate   *string
	EndDate     *string
}

// DeleteOptions controls cascade behaviour
type DeleteOptions struct {
	WithTeam bool
}

// DeleteResult reports what a cascade delete removed
type DeleteResult struct {
	TasksDeleted int  `json:"tasksDeleted"`
	TasksFailed  int  `json:"tasksFailed"`
	TeamDeleted  bool `json:"teamDeleted"`
}

// teamLister lists the caller's teams
type teamLister interface {
	List(ctx context.Context) ([]*models.Team, error)
}

// teamDeleter removes a team with admin rights
type teamDeleter interface {
	DeleteTeam(ctx context.Context, teamID string) error
}

// Collections names the document collections the service reads and writes
type Collections struct {
	Projects string
	Tasks    string
}

// service implements Service interface
type service struct {
	docs        platform.Databases
	teams       teamLister
	admin       teamDeleter
	collections Collections
	dates       *dates.Normalizer
	now         func() time.Time
}

// NewService creates a new project service
func NewService(docs platform.Databases, teams teamLister, admin teamDeleter, collections Collections, normalizer *dates.Normalizer) Service {
	return &service{
		docs:        docs,
		teams:       teams,
		admin:       admin,
		collections: collections,
		dates:       normalizer,
		now:         time.Now,
	}
}

// Load fetches the projects the user manages and those shared with the
// user's teams. Every fetch degrades to an empty list on failure.
func (s *service) Load(ctx context.Context, userID string) ([]*models.Project, error) {
	if userID == "" {
		return nil, ErrManagerRequired
	}

	var own []*models.Project
	var shared [][]*models.Project

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		own = s.fetch(gctx, "own projects", platform.Equal(converters.AttrManagerID, userID))
		return nil
	})
	g.Go(func() error {
		teams, err := s.teams.List(gctx)
		if err != nil {
			slog.Warn("failed to list teams", "error", err)
			return nil
		}

		shared = make([][]*models.Project, len(teams))
		tg, tctx := errgroup.WithContext(gctx)
		for i, team := range teams {
			tg.Go(func() error {
				shared[i] = s.fetch(tctx, "team projects", platform.Equal(converters.AttrTeamID, team.ID))
				return nil
			})
		}
		return tg.Wait()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pipeline.DedupeProjects(append([][]*models.Project{own}, shared...)...), nil
}

func (s *service) fetch(ctx context.Context, source string, filter platform.Query) []*models.Project {
	list, err := s.docs.ListDocuments(ctx, s.collections.Projects, filter, platform.Limit(listLimit))
	if err != nil {
		slog.Warn("failed to load projects", "source", source, "error", err)
		return nil
	}
	return converters.ProjectsToModels(list.Documents)
}

// List loads projects and applies the list pipeline
func (s *service) List(ctx context.Context, userID string, q pipeline.ProjectQuery) ([]*models.Project, error) {
	projects, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pipeline.Projects(projects, q), nil
}

// Get retrieves a specific project
func (s *service) Get(ctx context.Context, id string) (*models.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidProjectID
	}
	doc, err := s.docs.GetDocument(ctx, s.collections.Projects, id)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return converters.ProjectToModel(doc), nil
}

// Create creates a new project with validation
func (s *service) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	p, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	manager := platform.RoleUser(p.ManagerID)
	permissions := []string{
		platform.Read(platform.RoleAny),
		platform.Update(manager),
		platform.Delete(manager),
	}

	doc, err := s.docs.CreateDocument(ctx, s.collections.Projects, converters.ProjectData(p), permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return converters.ProjectToModel(doc), nil
}

// Update applies a partial update
func (s *service) Update(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidProjectID
	}

	patch := map[string]any{}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		patch[converters.AttrName] = name
	}
	if req.Description != nil {
		patch[converters.AttrDescription] = nullable(strings.TrimSpace(*req.Description))
	}
	if req.Status != nil {
		status, ok := models.ParseProjectStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		patch[converters.AttrStatus] = string(status)
	}

	if req.StartDate != nil || req.EndDate != nil {
		current, err := s.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		start, end := current.StartDate, current.EndDate
		if req.StartDate != nil {
			start = s.startDate(*req.StartDate)
			patch[converters.AttrStartDate] = start
		}
		if req.EndDate != nil {
			if end, err = s.endDate(*req.EndDate); err != nil {
				return nil, err
			}
			patch[converters.AttrEndDate] = nullable(end)
		}
		if err := checkRange(start, end); err != nil {
			return nil, err
		}
	}

	if len(patch) == 0 {
		return nil, ErrNoChanges
	}
	return s.patch(ctx, req.ID, patch)
}

// UpdateStatus validates and stores a new status
func (s *service) UpdateStatus(ctx context.Context, id, status string) (*models.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidProjectID
	}
	canonical, ok := models.ParseProjectStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	return s.patch(ctx, id, map[string]any{converters.AttrStatus: string(canonical)})
}

func (s *service) patch(ctx context.Context, id string, patch map[string]any) (*models.Project, error) {
	doc, err := s.docs.UpdateDocument(ctx, s.collections.Projects, id, patch, nil)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return converters.ProjectToModel(doc), nil
}

// Delete removes the project's tasks, the project, and optionally its team.
// Task deletions are best-effort: failures are logged and counted.
func (s *service) Delete(ctx context.Context, id string, opts DeleteOptions) (*DeleteResult, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	tasks, err := s.docs.ListDocuments(ctx, s.collections.Tasks,
		platform.Equal(converters.AttrProjectID, id), platform.Limit(listLimit))
	if err != nil {
		slog.Warn("failed to list project tasks before delete", "project", id, "error", err)
	} else {
		for _, task := range tasks.Documents {
			if err := s.docs.DeleteDocument(ctx, s.collections.Tasks, task.ID); err != nil {
				slog.Warn("failed to delete task", "project", id, "task", task.ID, "error", err)
				result.TasksFailed++
				continue
			}
			result.TasksDeleted++
		}
	}

	if err := s.docs.DeleteDocument(ctx, s.collections.Projects, id); err != nil {
		return result, fmt.Errorf("failed to delete project: %w", err)
	}

	if opts.WithTeam && project.HasTeam() {
		if err := s.admin.DeleteTeam(ctx, project.TeamID); err != nil {
			slog.Warn("failed to delete project team", "project", id, "team", project.TeamID, "error", err)
		} else {
			result.TeamDeleted = true
		}
	}

	return result, nil
}

func (s *service) validateCreate(req CreateProjectRequest) (*models.Project, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ManagerID) == "" {
		return nil, ErrManagerRequired
	}

	status := models.ProjectActive
	if strings.TrimSpace(req.Status) != "" {
		var ok bool
		if status, ok = models.ParseProjectStatus(req.Status); !ok {
			return nil, ErrInvalidStatus
		}
	}

	start := s.startDate(req.StartDate)
	end, err := s.endDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	return &models.Project{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		StartDate:   start,
		EndDate:     end,
		ManagerID:   req.ManagerID,
	}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// startDate canonicalizes a start date, defaulting to today
func (s *service) startDate(value string) string {
	if start, ok := s.dates.Canonicalize(value); ok {
		return start
	}
	return s.dates.Today(s.now())
}

// endDate canonicalizes an optional end date
func (s *service) endDate(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	end, ok := s.dates.Canonicalize(value)
	if !ok {
		return "", ErrInvalidDate
	}
	return end, nil
}

func checkRange(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, okS := dates.ParseInstant(start)
	e, okE := dates.ParseInstant(end)
	if okS && okE && e.Before(s) {
		return ErrEndBeforeStart
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
