package tui

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/app"
	"github.com/thenoetrevino/faena/internal/config"
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform/local"
	"github.com/thenoetrevino/faena/internal/services/session"
	"github.com/thenoetrevino/faena/internal/testutil"
)

const testDebounce = 30 * time.Millisecond

type testEnv struct {
	store *local.Store
	app   *app.App
	user  *models.User
	cfg   *config.Config
}

// setupSignedIn returns an app signed in as a fresh user
func setupSignedIn(t *testing.T) *testEnv {
	t.Helper()
	store := testutil.NewStore(t)
	backend, user := testutil.SignUp(t, store, "tui@example.com", "Tui User")
	a := app.New(backend, app.WithSessionStore(&session.MemoryStore{}))
	a.Session.Refresh(context.Background())
	return &testEnv{store: store, app: a, user: user, cfg: testConfig()}
}

// setupAnonymous returns an app with nobody signed in
func setupAnonymous(t *testing.T) *testEnv {
	t.Helper()
	store := testutil.NewStore(t)
	a := app.New(store.Backend(), app.WithSessionStore(&session.MemoryStore{}))
	a.Session.Refresh(context.Background())
	return &testEnv{store: store, app: a, cfg: testConfig()}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SearchDebounce = testDebounce
	return cfg
}

// newModel creates a model and, when signed in, applies the first project
// load. The search listener returned by Init is never run.
func newModel(t *testing.T, env *testEnv) Model {
	t.Helper()
	m := InitialModel(context.Background(), env.app, env.cfg)
	t.Cleanup(m.Close)
	_ = m.Init()
	if cmd := m.fetchProjects(m.projectsSeq); cmd != nil {
		m, _ = update(m, cmd())
	}
	return m
}

// update feeds msg to the model and returns the updated model
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds its message back to the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	m, _ = update(m, cmd())
	return m
}

// press sends one key press
func press(m Model, key string) (Model, tea.Cmd) {
	return update(m, keyMsg(key))
}

// typeText types s one character at a time
func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, tea.KeyPressMsg(tea.Key{Text: string(r), Code: r}))
	}
	return m
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "backspace":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyBackspace})
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "left":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "ctrl+r":
		return tea.KeyPressMsg(tea.Key{Code: 'r', Mod: tea.ModCtrl})
	}
	r, _ := utf8.DecodeRuneInString(key)
	return tea.KeyPressMsg(tea.Key{Text: key, Code: r})
}

// awaitSearch waits for the debouncer to settle and delivers the result
func awaitSearch(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case req := <-m.search.C():
		m, _ = update(m, searchSettledMsg(req))
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the search to settle")
		return m
	}
}

func projectNames(projects []*models.Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}

func taskTitles(tasks []*models.Task) []string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	return titles
}
