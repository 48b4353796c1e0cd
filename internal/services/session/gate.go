// Package session tracks who is signed in and decides which screen a
// request may reach.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// State of the session gate
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Route names a screen
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteProject   Route = "project"
)

// IsAuthScreen reports whether the route is a sign-in screen
func (r Route) IsAuthScreen() bool {
	return r == RouteLogin || r == RouteRegister
}

// Gate holds the signed-in user
type Gate struct {
	accounts platform.Accounts
	store    Store

	mu    sync.RWMutex
	state State
	user  *models.User
}

// NewGate creates a gate in the unknown state
func NewGate(accounts platform.Accounts, store Store) *Gate {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Gate{accounts: accounts, store: store}
}

// Restore loads a saved session secret and refreshes the state
func (g *Gate) Restore(ctx context.Context) State {
	stored, err := g.store.Load()
	if err != nil {
		slog.Warn("failed to load session", "error", err)
	}
	if stored != nil {
		g.accounts.UseSession(stored.Secret)
	}
	return g.Refresh(ctx)
}

// Refresh asks the platform for the current account. Any error signs out.
func (g *Gate) Refresh(ctx context.Context) State {
	user, err := g.accounts.Get(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		slog.Debug("no active session", "error", err)
		g.state = StateAnonymous
		g.user = nil
		return g.state
	}
	g.state = StateAuthenticated
	g.user = user
	return g.state
}

// State returns the current gate state
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// User returns the signed-in user, or nil
func (g *Gate) User() *models.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// RequireUser returns the signed-in user or ErrNotSignedIn
func (g *Gate) RequireUser() (*models.User, error) {
	if u := g.User(); u != nil {
		return u, nil
	}
	return nil, ErrNotSignedIn
}

// Route decides where a navigation to target lands
func (g *Gate) Route(target Route) Route {
	switch g.State() {
	case StateAuthenticated:
		if target.IsAuthScreen() {
			return RouteDashboard
		}
	case StateAnonymous:
		if !target.IsAuthScreen() {
			return RouteLogin
		}
	}
	return target
}

// Login creates an email session and persists its secret
func (g *Gate) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	sess, err := g.accounts.CreateEmailSession(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := g.store.Save(&Stored{Secret: sess.Secret, UserID: sess.UserID, Expire: sess.Expire}); err != nil {
		slog.Warn("failed to persist session", "error", err)
	}

	if g.Refresh(ctx) != StateAuthenticated {
		return nil, fmt.Errorf("sign in: session not accepted: %w", platform.ErrUnauthorized)
	}
	return g.User(), nil
}

// Register creates the account and signs in
func (g *Gate) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if _, err := g.accounts.Create(ctx, email, password, strings.TrimSpace(name)); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return g.Login(ctx, email, password)
}

// Logout deletes the current session. Local state is cleared even when the
// platform call fails.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.accounts.DeleteSession(ctx, platform.CurrentSession)
	g.accounts.UseSession("")

	g.mu.Lock()
	g.state = StateAnonymous
	g.user = nil
	g.mu.Unlock()

	if clearErr := g.store.Clear(); clearErr != nil {
		slog.Warn("failed to clear stored session", "error", clearErr)
	}
	if err != nil && !errors.Is(err, platform.ErrUnauthorized) {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
