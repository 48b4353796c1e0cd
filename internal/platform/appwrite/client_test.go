package appwrite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/platform"
)

// ============================================================================
// FAKE SERVER
// ============================================================================

const (
	testProject = "proj1"
	testKey     = "server-key"
	testSecret  = "secret-abc"
)

type fakeServer struct {
	t      *testing.T
	router chi.Router
	srv    *httptest.Server
	seen   []*http.Request
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{t: t, router: chi.NewRouter()}
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.seen = append(f.seen, r)
			if r.Header.Get("X-Appwrite-Project") != testProject {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "missing project"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	f.srv = httptest.NewServer(f.router)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) client(opts ...Option) *Client {
	f.t.Helper()
	c, err := New(f.srv.URL, testProject, append([]Option{WithDatabase("main")}, opts...)...)
	require.NoError(f.t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Appwrite-Session") != testSecret {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "User (role: guests) missing scope (account)", "type": "general_unauthorized_scope"})
			return
		}
		next(w, r)
	}
}

func requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Appwrite-Key") != testKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid key"})
			return
		}
		next(w, r)
	}
}

// ============================================================================
// CONSTRUCTION
// ============================================================================

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New("", testProject)
	assert.Error(t, err)

	_, err = New("cloud.example.com/v1", "")
	assert.Error(t, err)

	c, err := New("cloud.example.com/v1/", testProject)
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.com/v1", c.baseURL)
}

// ============================================================================
// ACCOUNTS
// ============================================================================

func TestAccounts_SessionFromCookie(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	f.router.Post("/account/sessions/email", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "a_session_" + testProject, Value: testSecret})
		writeJSON(w, http.StatusCreated, map[string]any{"$id": "s1", "userId": "u1", "secret": "", "expire": "2026-01-01T00:00:00.000+00:00"})
	})
	f.router.Get("/account", requireSession(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"$id": "u1", "name": "Ana", "email": "ana@example.com"})
	}))
	f.router.Delete("/account/sessions/{id}", requireSession(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "current", chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}))

	backend := f.client().Backend()
	ctx := context.Background()

	_, err := backend.Accounts.Get(ctx)
	assert.ErrorIs(t, err, platform.ErrUnauthorized)

	_, err = backend.Accounts.CreateEmailSession(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, platform.ErrUnauthorized)

	session, err := backend.Accounts.CreateEmailSession(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, testSecret, session.Secret)
	assert.Equal(t, "u1", session.UserID)

	user, err := backend.Accounts.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	require.NoError(t, backend.Accounts.DeleteSession(ctx, ""))
	_, err = backend.Accounts.Get(ctx)
	assert.ErrorIs(t, err, platform.ErrUnauthorized)
}

func TestAPIError_Decoding(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.router.Get("/account", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "expired", "code": 401, "type": "user_session_not_found"})
	})

	c := f.client()
	c.Backend().Accounts.UseSession("stale")
	_, err := c.Backend().Accounts.Get(context.Background())

	var apiErr APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "expired", apiErr.Message)
	assert.Equal(t, "user_session_not_found", apiErr.Type)
	assert.ErrorIs(t, err, platform.ErrUnauthorized)
}

// ============================================================================
// DATABASES
// ============================================================================

func TestDatabases_ListSendsQueriesAndDecodesMetadata(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	f.router.Get("/databases/main/collections/projects/documents", requireSession(func(w http.ResponseWriter, r *http.Request) {
		queries := r.URL.Query()["queries[]"]
		require.Len(t, queries, 2)
		q, err := platform.ParseQuery(queries[0])
		require.NoError(t, err)
		assert.Equal(t, platform.MethodEqual, q.Method)
		assert.Equal(t, "managerId", q.Attribute)

		writeJSON(w, http.StatusOK, map[string]any{
			"total": 1,
			"documents": []map[string]any{{
				"$id":           "p1",
				"$collectionId": "projects",
				"$databaseId":   "main",
				"$createdAt":    "2025-03-01T10:00:00.000+00:00",
				"$updatedAt":    "2025-03-02T10:00:00.000+00:00",
				"$permissions":  []string{`read("any")`},
				"name":          "Launch",
				"status":        "active",
			}},
		})
	}))

	c := f.client()
	c.Backend().Accounts.UseSession(testSecret)
	list, err := c.Backend().Databases.ListDocuments(context.Background(), "projects",
		platform.Equal("managerId", "u1"), platform.OrderDesc("$createdAt"))
	require.NoError(t, err)
	require.Len(t, list.Documents, 1)

	doc := list.Documents[0]
	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "projects", doc.CollectionID)
	assert.Equal(t, 2025, doc.CreatedAt.Year())
	assert.Equal(t, []string{`read("any")`}, doc.Permissions)
	assert.Equal(t, "Launch", doc.Data["name"])
	assert.NotContains(t, doc.Data, "$databaseId")
}

func TestDatabases_CreateUpdateDelete(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	var created, patched map[string]any
	f.router.Post("/databases/main/collections/tasks/documents", requireSession(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		writeJSON(w, http.StatusCreated, map[string]any{"$id": "t1", "title": "Fix bug"})
	}))
	f.router.Patch("/databases/main/collections/tasks/documents/{id}", requireSession(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		writeJSON(w, http.StatusOK, map[string]any{"$id": chi.URLParam(r, "id"), "title": "Fix bug", "dueDate": nil})
	}))
	f.router.Delete("/databases/main/collections/tasks/documents/{id}", requireSession(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Document not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	c := f.client()
	c.Backend().Accounts.UseSession(testSecret)
	db := c.Backend().Databases
	ctx := context.Background()

	doc, err := db.CreateDocument(ctx, "tasks", map[string]any{"title": "Fix bug"}, []string{platform.Read(platform.RoleUser("u1"))})
	require.NoError(t, err)
	assert.Equal(t, "t1", doc.ID)
	assert.Equal(t, "unique()", created["documentId"])
	assert.Equal(t, []any{`read("user:u1")`}, created["permissions"])

	_, err = db.UpdateDocument(ctx, "tasks", "t1", map[string]any{"dueDate": nil}, nil)
	require.NoError(t, err)
	assert.NotContains(t, patched, "permissions")
	assert.Contains(t, patched["data"], "dueDate")

	require.NoError(t, db.DeleteDocument(ctx, "tasks", "t1"))
	assert.ErrorIs(t, db.DeleteDocument(ctx, "tasks", "missing"), platform.ErrNotFound)
}

// ============================================================================
// TEAMS AND ADMIN
// ============================================================================

func TestAdmin_RequiresKey(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	_, err := f.client().Backend().Admin.GetUser(context.Background(), "u1")
	assert.ErrorIs(t, err, platform.ErrUnauthorized)
	assert.Empty(t, f.seen, "no request should be sent without a key")
}

func TestAdmin_UsersAndMemberships(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	f.router.Get("/users", requireKey(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ana", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 1,
			"users": []map[string]any{{"$id": "u1", "name": "Ana", "email": "ana@example.com"}},
		})
	}))
	f.router.Post("/teams/{team}/memberships", requireKey(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string   `json:"userId"`
			Roles  []string `json:"roles"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]any{
			"$id": "m1", "teamId": chi.URLParam(r, "team"), "userId": body.UserID, "roles": body.Roles, "confirm": true,
		})
	}))
	f.router.Delete("/teams/{team}", requireKey(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Team not found"})
	}))

	admin := f.client(WithAPIKey(testKey)).Backend().Admin
	ctx := context.Background()

	users, err := admin.ListUsers(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, users.Users, 1)
	assert.Equal(t, "ana@example.com", users.Users[0].Email)

	m, err := admin.CreateMembership(ctx, "t1", "u1", []string{"member"})
	require.NoError(t, err)
	assert.Equal(t, "t1", m.TeamID)
	assert.True(t, m.Confirmed)
	assert.False(t, m.IsOwner())

	assert.NoError(t, admin.DeleteTeam(ctx, "gone"), "missing team is tolerated")
}

func TestTeams_ListMemberships(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)

	f.router.Get("/teams/{team}/memberships", requireSession(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 2,
			"memberships": []map[string]any{
				{"$id": "m1", "teamId": "t1", "userId": "u1", "roles": []string{"owner"}, "confirm": true, "joined": "2025-01-01T00:00:00.000+00:00"},
				{"$id": "m2", "teamId": "t1", "userId": "u2", "userName": "Bo", "roles": []string{}, "confirm": false},
			},
		})
	}))

	c := f.client()
	c.Backend().Accounts.UseSession(testSecret)
	members, err := c.Backend().Teams.ListMemberships(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[0].IsOwner())
	assert.Equal(t, 2025, members[0].JoinedAt.Year())
	assert.Equal(t, "Bo", members[1].UserName)
	assert.False(t, members[1].Confirmed)
}
