// Package setup writes the faena config file
// e.g., faena setup --backend appwrite --endpoint ...
package setup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
	"github.com/thenoetrevino/faena/internal/config"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write the faena config file",
		Long: `Write the config file used by every other command.

Without flags the local backend is configured. FAENA_* environment
variables still override the saved file at run time.

Examples:
  # Keep everything in ~/.faena/faena.db
  faena setup

  # Talk to an Appwrite server
  faena setup --backend appwrite --endpoint https://cloud.appwrite.io/v1 --project-id abc123

  # Show where the config lives and what it says
  faena setup --check`,
		Args: cobra.NoArgs,
		// An invalid config must not stop setup from replacing it
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runSetup,
	}

	cmd.Flags().String("backend", config.BackendLocal, "Backend: local or appwrite")
	cmd.Flags().String("endpoint", "", "Appwrite endpoint URL")
	cmd.Flags().String("project-id", "", "Appwrite project ID")
	cmd.Flags().String("api-key", "", "Appwrite API key for admin lookups")
	cmd.Flags().String("database-id", "", "Appwrite database ID")
	cmd.Flags().String("db-path", "", "Local database file")
	cmd.Flags().String("redis-addr", "", "Redis address for the user directory cache")
	cmd.Flags().Bool("force", false, "Overwrite an existing config")
	cmd.Flags().Bool("check", false, "Show the current config instead of writing one")
	cli.AddOutputFlags(cmd)

	return cmd
}

type configResult struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Backend  string `json:"backend"`
	Endpoint string `json:"endpoint,omitempty"`
	DBPath   string `json:"dbPath,omitempty"`
	Problem  string `json:"problem,omitempty"`
	written  bool
}

func (r configResult) GetID() string { return r.Path }

func (r configResult) PrintHuman(w io.Writer) error {
	if r.written {
		_, err := fmt.Fprintf(w, "✓ Wrote config to %s (backend: %s)\n", r.Path, r.Backend)
		return err
	}
	if !r.Exists {
		_, err := fmt.Fprintf(w, "No config at %s, defaults are used (backend: %s)\n", r.Path, r.Backend)
		return err
	}
	fmt.Fprintf(w, "Config: %s\n", r.Path)
	fmt.Fprintf(w, "Backend: %s\n", r.Backend)
	if r.Endpoint != "" {
		fmt.Fprintf(w, "Endpoint: %s\n", r.Endpoint)
	}
	if r.DBPath != "" {
		fmt.Fprintf(w, "Database: %s\n", r.DBPath)
	}
	if r.Problem != "" {
		fmt.Fprintf(w, "Problem: %s\n", r.Problem)
	}
	return nil
}

func runSetup(cmd *cobra.Command, _ []string) error {
	format := cli.NewFormatter(cmd)

	path, err := config.Path()
	if err != nil {
		return format.Fail(err)
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if check, _ := cmd.Flags().GetBool("check"); check {
		return format.Success(describe(path, exists))
	}

	if force, _ := cmd.Flags().GetBool("force"); exists && !force {
		return format.Fail(cli.Usage(fmt.Sprintf("config already exists at %s, pass --force to overwrite", path)))
	}

	cfg, err := fromFlags(cmd)
	if err != nil {
		return format.Fail(err)
	}
	if err := cfg.Save(); err != nil {
		return format.Fail(fmt.Errorf("failed to write config: %w", err))
	}

	return format.Success(configResult{
		Path:     path,
		Exists:   true,
		Backend:  cfg.Backend,
		Endpoint: cfg.Appwrite.Endpoint,
		DBPath:   cfg.Local.DBPath,
		written:  true,
	})
}

// fromFlags applies the flags to the default config
func fromFlags(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	flags := cmd.Flags()
	set := func(dst *string, name string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	set(&cfg.Backend, "backend")
	set(&cfg.Appwrite.Endpoint, "endpoint")
	set(&cfg.Appwrite.ProjectID, "project-id")
	set(&cfg.Appwrite.APIKey, "api-key")
	set(&cfg.Appwrite.DatabaseID, "database-id")
	set(&cfg.Local.DBPath, "db-path")
	set(&cfg.Directory.RedisAddr, "redis-addr")

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, cli.Usage(err.Error())
	}
	return cfg, nil
}

func describe(path string, exists bool) configResult {
	r := configResult{Path: path, Exists: exists}
	cfg, err := config.LoadFile(path)
	if err != nil {
		r.Problem = err.Error()
		r.Backend = config.Default().Backend
		return r
	}
	r.Backend = cfg.Backend
	r.Endpoint = cfg.Appwrite.Endpoint
	r.DBPath = cfg.Local.DBPath
	return r
}
