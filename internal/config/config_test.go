package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points config lookups and FAENA_* overrides at a clean slate
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("HOME", tempDir)
	for _, key := range []string{
		"FAENA_BACKEND", "FAENA_ENDPOINT", "FAENA_PROJECT_ID", "FAENA_API_KEY",
		"FAENA_SEARCH_DEBOUNCE", "FAENA_DATE_LOCATION", "FAENA_REDIS_ADDR",
		"FAENA_LOCAL_DB_PATH", "FAENA_THEME_FILE", "FAENA_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return tempDir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "faena")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.Search != "/" {
		t.Errorf("Default Search key = %s, want /", defaults.Search)
	}
	if defaults.EditStatus != "e" {
		t.Errorf("Default EditStatus key = %s, want e", defaults.EditStatus)
	}
	if defaults.RemoveMember != "x" || defaults.PromoteMember != "R" {
		t.Errorf("Default member keys = %s/%s, want x/R", defaults.RemoveMember, defaults.PromoteMember)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	tempDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Backend != BackendLocal {
		t.Errorf("Backend = %s, want local", cfg.Backend)
	}
	if cfg.SearchDebounce != DefaultSearchDebounce {
		t.Errorf("SearchDebounce = %v, want %v", cfg.SearchDebounce, DefaultSearchDebounce)
	}
	if cfg.Local.DBPath != filepath.Join(tempDir, ".faena", "faena.db") {
		t.Errorf("DBPath = %s", cfg.Local.DBPath)
	}
	if cfg.Appwrite.ProjectsCollection != "projects" || cfg.Appwrite.TasksCollection != "tasks" {
		t.Errorf("Unexpected collection defaults %+v", cfg.Appwrite)
	}
	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	if cfg.ColorScheme.Accent == "" {
		t.Error("Expected default accent color")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := isolate(t)
	writeConfig(t, tempDir, `backend: appwrite
appwrite:
  endpoint: https://cloud.example.com/v1
  project_id: proj
search_debounce: 300ms
date_location: Europe/Berlin
key_mappings:
  quit: "x"
theme:
  accent: "#FF0000"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Backend != BackendAppwrite || cfg.Appwrite.ProjectID != "proj" {
		t.Errorf("Unexpected backend config %s %+v", cfg.Backend, cfg.Appwrite)
	}
	if cfg.Appwrite.DatabaseID != "default" {
		t.Errorf("DatabaseID = %s, want default", cfg.Appwrite.DatabaseID)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 300ms", cfg.SearchDebounce)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("Location = %s, want Europe/Berlin", cfg.Location())
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	if cfg.KeyMappings.Search != "/" {
		t.Errorf("Loaded Search key = %s, want / (default)", cfg.KeyMappings.Search)
	}
	if cfg.ColorScheme.Accent != "#FF0000" || cfg.ColorScheme.ErrorFg == "" {
		t.Errorf("Unexpected theme %+v", cfg.ColorScheme)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tempDir := isolate(t)
	writeConfig(t, tempDir, "backend: local\nlog_level: warn\n")

	t.Setenv("FAENA_BACKEND", "appwrite")
	t.Setenv("FAENA_ENDPOINT", "https://env.example.com/v1")
	t.Setenv("FAENA_PROJECT_ID", "env-proj")
	t.Setenv("FAENA_SEARCH_DEBOUNCE", "50ms")
	t.Setenv("FAENA_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != BackendAppwrite || cfg.Appwrite.Endpoint != "https://env.example.com/v1" {
		t.Errorf("Expected env to override backend, got %s %s", cfg.Backend, cfg.Appwrite.Endpoint)
	}
	if cfg.SearchDebounce != 50*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 50ms", cfg.SearchDebounce)
	}
	if cfg.Directory.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %s", cfg.Directory.RedisAddr)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level = %v, want warn", cfg.Level())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tempDir := isolate(t)
	writeConfig(t, tempDir, "backend: appwrite\n")

	if _, err := Load(); err == nil {
		t.Error("Expected appwrite backend without endpoint to fail")
	}

	writeConfig(t, tempDir, "backend: firebase\n")
	if _, err := Load(); err == nil {
		t.Error("Expected unknown backend to fail")
	}
}

func TestThemeFileLoading(t *testing.T) {
	tempDir := isolate(t)

	themePath := filepath.Join(tempDir, "theme.yaml")
	themeContent := []byte(`theme:
  accent: "#FF0000"
  status_active: "#00FF00"
`)
	if err := os.WriteFile(themePath, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme: %v", err)
	}
	t.Setenv("FAENA_THEME_FILE", themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.StatusActive != "#00FF00" {
		t.Errorf("Expected status_active to be #00FF00, got %s", cfg.ColorScheme.StatusActive)
	}
	if cfg.ColorScheme.ErrorFg == "" {
		t.Error("Expected error_fg to have default value")
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := isolate(t)

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.SearchDebounce = 500 * time.Millisecond

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "faena", "config.yaml")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Config file not created at %s", configPath)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Config file mode = %v, want 0600", info.Mode().Perm())
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.SearchDebounce != 500*time.Millisecond {
		t.Errorf("Reloaded SearchDebounce = %v, want 500ms", cfg2.SearchDebounce)
	}
}
