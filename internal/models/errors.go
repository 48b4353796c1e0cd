package models

import "errors"

// Domain errors shared across services
var (
	// ErrOwnerImmutable indicates an attempt to remove or demote a team owner
	ErrOwnerImmutable = errors.New("team owner cannot be removed or demoted")

	// ErrMembershipNotFound indicates the membership is not part of the team
	ErrMembershipNotFound = errors.New("membership not found")
)
