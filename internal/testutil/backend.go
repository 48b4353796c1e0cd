package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
	"github.com/thenoetrevino/faena/internal/platform/local"
)

// TestPassword is the password SignUp registers users with
const TestPassword = "password123"

// NewStore opens an in-memory local backend that is closed with the test
func NewStore(t *testing.T) *local.Store {
	t.Helper()
	store, err := local.Open(context.Background(), local.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SignUp registers a user and returns a backend signed in as that user
func SignUp(t *testing.T, store *local.Store, email, name string) (platform.Backend, *models.User) {
	t.Helper()
	ctx := context.Background()
	backend := store.Backend()

	user, err := backend.Accounts.Create(ctx, email, TestPassword, name)
	if err != nil {
		t.Fatalf("Failed to create account %s: %v", email, err)
	}
	if _, err := backend.Accounts.CreateEmailSession(ctx, email, TestPassword); err != nil {
		t.Fatalf("Failed to sign in %s: %v", email, err)
	}
	return backend, user
}
