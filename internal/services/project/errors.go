package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidStatus    = errors.New("invalid project status: use active, on hold or completed")
	ErrInvalidDate      = errors.New("invalid date: use dd.mm.yyyy or yyyy-mm-dd")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
	ErrManagerRequired  = errors.New("project manager is required")
	ErrNoChanges        = errors.New("no fields to update")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
)
