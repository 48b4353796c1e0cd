package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/platform"
	"github.com/thenoetrevino/faena/internal/testutil"
)

// failingLogout wraps accounts whose session deletion always fails
type failingLogout struct {
	platform.Accounts
}

func (f failingLogout) DeleteSession(context.Context, string) error {
	return errors.New("network down")
}

// ============================================================================
// ROUTING
// ============================================================================

func TestGate_Route(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state  State
		target Route
		want   Route
	}{
		{StateUnknown, RouteDashboard, RouteDashboard},
		{StateUnknown, RouteLogin, RouteLogin},
		{StateAnonymous, RouteDashboard, RouteLogin},
		{StateAnonymous, RouteProject, RouteLogin},
		{StateAnonymous, RouteRegister, RouteRegister},
		{StateAuthenticated, RouteLogin, RouteDashboard},
		{StateAuthenticated, RouteRegister, RouteDashboard},
		{StateAuthenticated, RouteProject, RouteProject},
	}

	for _, tt := range tests {
		g := &Gate{state: tt.state}
		assert.Equal(t, tt.want, g.Route(tt.target), "%s -> %s", tt.state, tt.target)
	}
}

// ============================================================================
// LOGIN / REGISTER / LOGOUT
// ============================================================================

func TestGate_RegisterLoginLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewStore(t)
	sessions := &MemoryStore{}
	g := NewGate(store.Backend().Accounts, sessions)

	assert.Equal(t, StateUnknown, g.State())
	assert.Equal(t, StateAnonymous, g.Refresh(ctx))

	user, err := g.Register(ctx, "ana@example.com", testutil.TestPassword, " Ana ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, StateAuthenticated, g.State())

	stored, err := sessions.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.Secret)
	assert.Equal(t, user.ID, stored.UserID)

	require.NoError(t, g.Logout(ctx))
	assert.Equal(t, StateAnonymous, g.State())
	assert.Nil(t, g.User())
	stored, _ = sessions.Load()
	assert.Nil(t, stored)

	_, err = g.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, platform.ErrUnauthorized)
	assert.Equal(t, StateAnonymous, g.State())

	_, err = g.Login(ctx, "ana@example.com", testutil.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, g.State())
}

func TestGate_LoginValidation(t *testing.T) {
	t.Parallel()
	store := testutil.NewStore(t)
	g := NewGate(store.Backend().Accounts, nil)

	_, err := g.Login(context.Background(), "  ", "secret")
	assert.ErrorIs(t, err, ErrEmailRequired)
	_, err = g.Login(context.Background(), "a@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
	_, err = g.Register(context.Background(), "", "secret", "A")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestGate_RestoreFromStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewStore(t)
	sessions := &MemoryStore{}

	first := NewGate(store.Backend().Accounts, sessions)
	_, err := first.Register(ctx, "bo@example.com", testutil.TestPassword, "Bo")
	require.NoError(t, err)

	second := NewGate(store.Backend().Accounts, sessions)
	assert.Equal(t, StateAuthenticated, second.Restore(ctx))
	assert.Equal(t, "Bo", second.User().Name)
}

func TestGate_LogoutClearsEvenOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewStore(t)
	sessions := &MemoryStore{}
	accounts := store.Backend().Accounts

	g := NewGate(accounts, sessions)
	_, err := g.Register(ctx, "cy@example.com", testutil.TestPassword, "Cy")
	require.NoError(t, err)

	g.accounts = failingLogout{Accounts: accounts}
	err = g.Logout(ctx)
	assert.Error(t, err)
	assert.Equal(t, StateAnonymous, g.State())
	stored, _ := sessions.Load()
	assert.Nil(t, stored)
}

// ============================================================================
// FILE STORE
// ============================================================================

func TestFileStore(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, fs.Save(&Stored{Secret: "s3cret", UserID: "u1"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = fs.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s3cret", got.Secret)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	got, err = fs.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}
