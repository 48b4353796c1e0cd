package team

import (
	"errors"

	"github.com/thenoetrevino/faena/internal/models"
)

// Team-related errors
var (
	// Validation errors
	ErrInvalidTeamID       = errors.New("invalid team ID")
	ErrInvalidProjectID    = errors.New("invalid project ID")
	ErrInvalidMembershipID = errors.New("invalid membership ID")
	ErrEmailRequired       = errors.New("email is required")
	ErrInvalidRole         = errors.New("invalid role: use owner or member")
	ErrConfirmIncomplete   = errors.New("team, membership, user and secret are all required")

	// Business logic errors
	ErrOwnerImmutable     = models.ErrOwnerImmutable
	ErrMembershipNotFound = models.ErrMembershipNotFound
	ErrProjectHasTeam     = errors.New("project already has a team")
)
