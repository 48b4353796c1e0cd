package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/faena/internal/config/colors"
)

// Backend names
const (
	BackendAppwrite = "appwrite"
	BackendLocal    = "local"
)

// DefaultSearchDebounce is the pause after the last keystroke before a search runs
const DefaultSearchDebounce = 1200 * time.Millisecond

// Config represents the application configuration
type Config struct {
	Backend        string             `yaml:"backend"`
	Appwrite       AppwriteConfig     `yaml:"appwrite"`
	Local          LocalConfig        `yaml:"local"`
	Directory      DirectoryConfig    `yaml:"directory"`
	SearchDebounce time.Duration      `yaml:"search_debounce"`
	DateLocation   string             `yaml:"date_location"`
	LogLevel       string             `yaml:"log_level"`
	KeyMappings    KeyMappings        `yaml:"key_mappings"`
	ColorScheme    colors.ColorScheme `yaml:"theme"`
}

// AppwriteConfig points at a hosted platform project
type AppwriteConfig struct {
	Endpoint           string `yaml:"endpoint"`
	ProjectID          string `yaml:"project_id"`
	APIKey             string `yaml:"api_key,omitempty"`
	DatabaseID         string `yaml:"database_id"`
	ProjectsCollection string `yaml:"projects_collection"`
	TasksCollection    string `yaml:"tasks_collection"`
	SelfSigned         bool   `yaml:"self_signed,omitempty"`
}

// LocalConfig configures the embedded SQLite backend
type LocalConfig struct {
	DBPath string `yaml:"db_path"`
}

// DirectoryConfig configures the user lookup cache
type DirectoryConfig struct {
	RedisAddr string        `yaml:"redis_addr,omitempty"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// envOverrides are read from FAENA_* variables and win over the file
type envOverrides struct {
	Backend            string        `envconfig:"BACKEND"`
	Endpoint           string        `envconfig:"ENDPOINT"`
	ProjectID          string        `envconfig:"PROJECT_ID"`
	APIKey             string        `envconfig:"API_KEY"`
	DatabaseID         string        `envconfig:"DATABASE_ID"`
	ProjectsCollection string        `envconfig:"PROJECTS_COLLECTION"`
	TasksCollection    string        `envconfig:"TASKS_COLLECTION"`
	LogLevel           string        `envconfig:"LOG_LEVEL"`
	SearchDebounce     time.Duration `envconfig:"SEARCH_DEBOUNCE"`
	DateLocation       string        `envconfig:"DATE_LOCATION"`
	RedisAddr          string        `envconfig:"REDIS_ADDR"`
	LocalDBPath        string        `envconfig:"LOCAL_DB_PATH"`
	ThemeFile          string        `envconfig:"THEME_FILE"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges the theme from FAENA_THEME_FILE
func loadThemeFile(config *Config, themeFile string) {
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		configPath = ""
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, applying defaults and FAENA_* overrides
func LoadFile(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse %s: %w", configPath, err)
			}
		}
	}

	var env envOverrides
	if err := envconfig.Process("FAENA", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	config.applyEnv(env)
	loadThemeFile(config, env.ThemeFile)

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may hold an API key
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "faena", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "faena", "config.yaml"), nil
}

// DataDir returns ~/.faena, where the session, logs and local database live
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".faena"), nil
}

// Validate reports configuration that cannot work
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		return nil
	case BackendAppwrite:
		if c.Appwrite.Endpoint == "" || c.Appwrite.ProjectID == "" {
			return fmt.Errorf("appwrite backend needs appwrite.endpoint and appwrite.project_id")
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendAppwrite, BackendLocal)
	}
}

// Location returns the timezone dates are entered in
func (c *Config) Location() *time.Location {
	if c.DateLocation == "" || strings.EqualFold(c.DateLocation, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DateLocation)
	if err != nil {
		slog.Warn("unknown date location, using local time", "location", c.DateLocation, "error", err)
		return time.Local
	}
	return loc
}

// Level returns the configured slog level
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) applyEnv(env envOverrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Backend, env.Backend)
	set(&c.Appwrite.Endpoint, env.Endpoint)
	set(&c.Appwrite.ProjectID, env.ProjectID)
	set(&c.Appwrite.APIKey, env.APIKey)
	set(&c.Appwrite.DatabaseID, env.DatabaseID)
	set(&c.Appwrite.ProjectsCollection, env.ProjectsCollection)
	set(&c.Appwrite.TasksCollection, env.TasksCollection)
	set(&c.LogLevel, env.LogLevel)
	set(&c.DateLocation, env.DateLocation)
	set(&c.Directory.RedisAddr, env.RedisAddr)
	set(&c.Local.DBPath, env.LocalDBPath)
	if env.SearchDebounce > 0 {
		c.SearchDebounce = env.SearchDebounce
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendLocal
	}
	if c.Appwrite.DatabaseID == "" {
		c.Appwrite.DatabaseID = "default"
	}
	if c.Appwrite.ProjectsCollection == "" {
		c.Appwrite.ProjectsCollection = "projects"
	}
	if c.Appwrite.TasksCollection == "" {
		c.Appwrite.TasksCollection = "tasks"
	}
	if c.Local.DBPath == "" {
		if dir, err := DataDir(); err == nil {
			c.Local.DBPath = filepath.Join(dir, "faena.db")
		}
	}
	if c.Directory.CacheTTL <= 0 {
		c.Directory.CacheTTL = 10 * time.Minute
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
