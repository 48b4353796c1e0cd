package session

import "errors"

// Validation errors
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNotSignedIn      = errors.New("not signed in")
)
