// Package directory resolves user IDs and emails to directory entries.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// Paging limits for UsersMap
const (
	PageSize = 100
	MaxPages = 10
)

// ErrUserNotFound is returned when no user matches an email
var ErrUserNotFound = errors.New("user not found")

// Directory looks users up by ID
type Directory interface {
	Lookup(ctx context.Context, id string) (*models.User, error)
}

// Admin is a Directory backed by the platform admin API
type Admin struct {
	admin platform.Admin
}

// New creates an admin-backed directory
func New(admin platform.Admin) *Admin {
	return &Admin{admin: admin}
}

// Lookup fetches a single user
func (d *Admin) Lookup(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	return d.admin.GetUser(ctx, id)
}

// UsersMap builds an ID index of the directory. Paging stops at the first
// short page or error; whatever was fetched so far is returned.
func (d *Admin) UsersMap(ctx context.Context) map[string]*models.User {
	users := make(map[string]*models.User)

	for page := range MaxPages {
		list, err := d.admin.ListUsers(ctx, "", platform.Limit(PageSize), platform.Offset(page*PageSize))
		if err != nil {
			slog.Warn("failed to list directory users", "page", page, "error", err)
			break
		}
		for _, u := range list.Users {
			users[u.ID] = u
		}
		if len(list.Users) < PageSize {
			break
		}
	}

	return users
}

// FindByEmail resolves an email with an exact query, falling back to a
// directory search when the exact query fails or finds nothing.
func (d *Admin) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	list, err := d.admin.ListUsers(ctx, "", platform.Equal("email", email), platform.Limit(1))
	if err == nil && len(list.Users) > 0 {
		return list.Users[0], nil
	}
	if err != nil {
		slog.Debug("exact email lookup failed, searching", "error", err)
	}

	list, err = d.admin.ListUsers(ctx, email, platform.Limit(PageSize))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	for _, u := range list.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", email, ErrUserNotFound)
}
