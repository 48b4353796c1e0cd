package cli

import (
	"errors"

	"github.com/thenoetrevino/faena/internal/directory"
	"github.com/thenoetrevino/faena/internal/platform"
	projectservice "github.com/thenoetrevino/faena/internal/services/project"
	"github.com/thenoetrevino/faena/internal/services/session"
	taskservice "github.com/thenoetrevino/faena/internal/services/task"
	teamservice "github.com/thenoetrevino/faena/internal/services/team"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates a general error occurred.
	// Use for: network errors, permission errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitGeneralError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments, or no project selected.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Project, task, membership or user not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or conflicting data.
	// Use for: Already existing accounts or memberships, unreadable input.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status, priority, date or role values, empty names,
	// owner memberships that cannot be changed.
	ExitValidation = 5

	// ExitUnauthenticated indicates there is no usable session.
	ExitUnauthenticated = 6
)

// ExitError carries the process exit code for a failed command.
// The message has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// UsageError marks an error caused by how the command was invoked
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Usage returns a UsageError
func Usage(message string) error {
	return &UsageError{Message: message}
}

var validationErrors = []error{
	projectservice.ErrEmptyName,
	projectservice.ErrNameTooLong,
	projectservice.ErrInvalidProjectID,
	projectservice.ErrInvalidStatus,
	projectservice.ErrInvalidDate,
	projectservice.ErrEndBeforeStart,
	projectservice.ErrManagerRequired,
	projectservice.ErrNoChanges,
	taskservice.ErrEmptyTitle,
	taskservice.ErrTitleTooLong,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidProjectID,
	taskservice.ErrInvalidStatus,
	taskservice.ErrInvalidPriority,
	taskservice.ErrInvalidDate,
	taskservice.ErrNoChanges,
	teamservice.ErrInvalidTeamID,
	teamservice.ErrInvalidProjectID,
	teamservice.ErrInvalidMembershipID,
	teamservice.ErrEmailRequired,
	teamservice.ErrInvalidRole,
	teamservice.ErrConfirmIncomplete,
	teamservice.ErrOwnerImmutable,
	teamservice.ErrProjectHasTeam,
	session.ErrEmailRequired,
	session.ErrPasswordRequired,
	ErrNoTeam,
}

var notFoundErrors = []error{
	platform.ErrNotFound,
	projectservice.ErrProjectNotFound,
	taskservice.ErrTaskNotFound,
	taskservice.ErrProjectNotFound,
	teamservice.ErrMembershipNotFound,
	directory.ErrUserNotFound,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExitCode maps an error to the exit code table above
func ExitCode(err error) int {
	var exitErr *ExitError
	var usageErr *UsageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &usageErr), errors.Is(err, ErrNoProject):
		return ExitUsage
	case errors.Is(err, platform.ErrUnauthorized), errors.Is(err, session.ErrNotSignedIn):
		return ExitUnauthenticated
	case isAny(err, notFoundErrors):
		return ExitNotFound
	case isAny(err, validationErrors):
		return ExitValidation
	case errors.Is(err, platform.ErrConflict):
		return ExitDataErr
	default:
		return ExitGeneralError
	}
}

// ErrorCode returns the machine-readable code reported in JSON output
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitUnauthenticated:
		return "UNAUTHENTICATED"
	default:
		if errors.Is(err, platform.ErrForbidden) {
			return "FORBIDDEN"
		}
		return "ERROR"
	}
}

// Suggestion returns a hint for errors the user can fix
func Suggestion(err error) string {
	switch {
	case errors.Is(err, ErrNoProject):
		return "Set project with: eval $(faena use project <project-id>)"
	case errors.Is(err, ErrNoTeam):
		return "Create one with: faena team create"
	case ExitCode(err) == ExitUnauthenticated:
		return "Sign in with: faena login"
	default:
		return ""
	}
}
