package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/faena/internal/converters"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/pipeline"
	"github.com/thenoetrevino/faena/internal/platform"
)

// MaxTitleLength is the longest accepted title, in characters
const MaxTitleLength = 255

const listLimit = 5000

// Service defines all task-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context, projectID string, q pipeline.TaskQuery) ([]*models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)

	// Write operations
	Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// CreateTaskRequest encapsulates data for creating a task
type CreateTaskRequest struct {
	ProjectID   string
	Title       string
	Description string
	Status      string // defaults to todo
	Priority    string // defaults to medium
	DueDate     string // dd.mm.yyyy or generic date; empty for none
	AssigneeID  string
	CreatedBy   string
}

// UpdateTaskRequest encapsulates data for updating a task.
// Nil fields are left unchanged; an empty DueDate clears it.
type UpdateTaskRequest struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
	AssigneeID  *string
	UpdatedBy   string
}

// service implements Service interface
type service struct {
	docs       platform.Databases
	collection string
	projects   string
	dates      *dates.Normalizer
}

// Collections names the task collection and the project collection new
// tasks must reference
type Collections struct {
	Projects string
	Tasks    string
}

// NewService creates a new task service
func NewService(docs platform.Databases, cols Collections, normalizer *dates.Normalizer) Service {
	return &service{
		docs:       docs,
		collection: cols.Tasks,
		projects:   cols.Projects,
		dates:      normalizer,
	}
}

// List fetches a project's tasks newest first and applies the list pipeline
func (s *service) List(ctx context.Context, projectID string, q pipeline.TaskQuery) ([]*models.Task, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrInvalidProjectID
	}

	list, err := s.docs.ListDocuments(ctx, s.collection,
		platform.Equal(converters.AttrProjectID, projectID),
		platform.OrderDesc("$createdAt"),
		platform.Limit(listLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return pipeline.Tasks(converters.TasksToModels(list.Documents), q), nil
}

// Get retrieves a specific task
func (s *service) Get(ctx context.Context, id string) (*models.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidTaskID
	}
	doc, err := s.docs.GetDocument(ctx, s.collection, id)
	if err != nil {
		return nil, wrapNotFound(err, "failed to get task")
	}
	return converters.TaskToModel(doc), nil
}

// Create validates and stores a new task. The assignee may read it; the
// creator may read, update and delete it.
func (s *service) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	t, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, t.ProjectID); err != nil {
		return nil, err
	}

	var permissions []string
	if t.AssigneeID != "" {
		permissions = append(permissions, platform.Read(platform.RoleUser(t.AssigneeID)))
	}
	if t.CreatedBy != "" {
		creator := platform.RoleUser(t.CreatedBy)
		permissions = append(permissions, platform.Read(creator), platform.Update(creator), platform.Delete(creator))
	}

	doc, err := s.docs.CreateDocument(ctx, s.collection, converters.TaskData(t), permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return converters.TaskToModel(doc), nil
}

// Update patches the allowed fields and records who made the change
func (s *service) Update(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidTaskID
	}

	patch := map[string]any{}
	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		patch[converters.AttrTitle] = title
	}
	if req.Description != nil {
		patch[converters.AttrDescription] = nullable(strings.TrimSpace(*req.Description))
	}
	if req.Status != nil {
		status, ok := models.ParseTaskStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		patch[converters.AttrStatus] = string(status)
	}
	if req.Priority != nil {
		priority, ok := models.ParsePriority(*req.Priority)
		if !ok {
			return nil, ErrInvalidPriority
		}
		patch[converters.AttrPriority] = string(priority)
	}
	if req.DueDate != nil {
		due, err := s.dueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		patch[converters.AttrDueDate] = nullable(due)
	}
	if req.AssigneeID != nil {
		patch[converters.AttrAssigneeID] = nullable(strings.TrimSpace(*req.AssigneeID))
	}

	if len(patch) == 0 {
		return nil, ErrNoChanges
	}
	if req.UpdatedBy != "" {
		patch[converters.AttrUpdatedBy] = req.UpdatedBy
	}

	doc, err := s.docs.UpdateDocument(ctx, s.collection, req.ID, patch, nil)
	if err != nil {
		return nil, wrapNotFound(err, "failed to update task")
	}
	return converters.TaskToModel(doc), nil
}

// Delete removes a task
func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidTaskID
	}
	if err := s.docs.DeleteDocument(ctx, s.collection, id); err != nil {
		return wrapNotFound(err, "failed to delete task")
	}
	return nil
}

func (s *service) validateCreate(req CreateTaskRequest) (*models.Task, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidProjectID
	}

	status := models.TaskTodo
	if strings.TrimSpace(req.Status) != "" {
		var ok bool
		if status, ok = models.ParseTaskStatus(req.Status); !ok {
			return nil, ErrInvalidStatus
		}
	}

	priority := models.PriorityMedium
	if strings.TrimSpace(req.Priority) != "" {
		var ok bool
		if priority, ok = models.ParsePriority(req.Priority); !ok {
			return nil, ErrInvalidPriority
		}
	}

	due, err := s.dueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	return &models.Task{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		ProjectID:   strings.TrimSpace(req.ProjectID),
		AssigneeID:  strings.TrimSpace(req.AssigneeID),
		CreatedBy:   req.CreatedBy,
	}, nil
}

// requireProject checks that the task's project exists and is readable
func (s *service) requireProject(ctx context.Context, projectID string) error {
	if _, err := s.docs.GetDocument(ctx, s.projects, projectID); err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to load project %s: %w", projectID, err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// dueDate canonicalizes an optional due date. Blank means none.
func (s *service) dueDate(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	due, ok := s.dates.Canonicalize(value)
	if !ok {
		return "", ErrInvalidDate
	}
	return due, nil
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, platform.ErrNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
