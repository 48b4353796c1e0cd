// Package platform defines the contract faena needs from its backend:
// accounts and sessions, document storage, teams, and admin-only directory
// and membership operations. Implementations live in subpackages.
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/thenoetrevino/faena/internal/models"
)

// Errors returned by every backend implementation
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("permission denied")
	ErrConflict     = errors.New("already exists")
)

// Session is an authenticated session. Secret authenticates further requests.
type Session struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Secret string    `json:"secret"`
	Expire time.Time `json:"expire"`
}

// Document is a stored record with platform metadata and free-form fields
type Document struct {
	ID           string
	CollectionID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Permissions  []string
	Data         map[string]any
}

// DocumentList is a page of documents
type DocumentList struct {
	Total     int
	Documents []*Document
}

// UserList is a page of directory users
type UserList struct {
	Total int
	Users []*models.User
}

// Accounts manages the signed-in user
type Accounts interface {
	// UseSession authenticates further calls with a stored session secret
	UseSession(secret string)
	Get(ctx context.Context) (*models.User, error)
	Create(ctx context.Context, email, password, name string) (*models.User, error)
	CreateEmailSession(ctx context.Context, email, password string) (*Session, error)
	// DeleteSession deletes a session; "current" deletes the active one
	DeleteSession(ctx context.Context, sessionID string) error
}

// Databases stores documents in collections.
// UpdateDocument leaves permissions unchanged when permissions is nil.
type Databases interface {
	ListDocuments(ctx context.Context, collection string, queries ...Query) (*DocumentList, error)
	GetDocument(ctx context.Context, collection, id string) (*Document, error)
	CreateDocument(ctx context.Context, collection string, data map[string]any, permissions []string) (*Document, error)
	UpdateDocument(ctx context.Context, collection, id string, data map[string]any, permissions []string) (*Document, error)
	DeleteDocument(ctx context.Context, collection, id string) error
}

// Teams manages teams visible to the signed-in user
type Teams interface {
	Create(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListMemberships(ctx context.Context, teamID string) ([]*models.Membership, error)
	DeleteMembership(ctx context.Context, teamID, membershipID string) error
	UpdateMembershipStatus(ctx context.Context, teamID, membershipID, userID, secret string) (*models.Membership, error)
}

// Admin covers operations that require the server API key
type Admin interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, search string, queries ...Query) (*UserList, error)
	CreateMembership(ctx context.Context, teamID, userID string, roles []string) (*models.Membership, error)
	UpdateMembershipRoles(ctx context.Context, teamID, membershipID string, roles []string) (*models.Membership, error)
	DeleteTeam(ctx context.Context, teamID string) error
}

// Backend bundles the platform services
type Backend struct {
	Accounts  Accounts
	Databases Databases
	Teams     Teams
	Admin     Admin
}

// CurrentSession is the session ID alias for the active session
const CurrentSession = "current"
