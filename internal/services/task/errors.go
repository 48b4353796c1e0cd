package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrTitleTooLong     = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidStatus    = errors.New("invalid status: use todo, in_progress, review or done")
	ErrInvalidPriority  = errors.New("invalid priority: use low, medium, high or critical")
	ErrInvalidDate      = errors.New("invalid due date: use dd.mm.yyyy or yyyy-mm-dd")
	ErrNoChanges        = errors.New("no fields to update")

	// Business logic errors
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)
