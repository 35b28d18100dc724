package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables that override config file settings.
const (
	EnvConfig = "MGIT_CONFIG" // alternate config file path
	EnvRoot   = "MGIT_ROOT"   // workspace root
)

// DefaultRoot is the workspace root used when nothing else is configured
const DefaultRoot = "~/workspaces"

// DefaultProbeTimeout bounds each external probe run by doctor
const DefaultProbeTimeout = 10 * time.Second

// WorkspaceConfig holds where managed repos live
type WorkspaceConfig struct {
	Root string `toml:"root"` // absolute or ~/...; repos go to <root>/<host>/<owner>/<name>
}

// EnsureConfig holds settings for `mgit ensure`
type EnsureConfig struct {
	VSCodeWorkspace  bool   `toml:"vscode_workspace"`  // scaffold <name>.mgit.code-workspace
	DepsFolders      bool   `toml:"deps_folders"`      // create folders referenced by workspace files
	WorkspaceMatcher string `toml:"workspace_matcher"` // "strict" or "relaxed"
	Jobs             int    `toml:"jobs"`              // concurrent repos
}

// DoctorConfig holds settings for `mgit doctor`
type DoctorConfig struct {
	Strict       bool     `toml:"strict"`        // exit 1 when any warning was reported
	ProbeTimeout Duration `toml:"probe_timeout"` // per external probe
}

// ThemeConfig holds UI theme settings
type ThemeConfig struct {
	Name    string `toml:"name"`  // preset name
	Mode    string `toml:"mode"`  // auto, light, dark
	Emoji   bool   `toml:"emoji"` // use emoji report glyphs
	Primary string `toml:"primary"`
	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Error   string `toml:"error"`
	Muted   string `toml:"muted"`
}

// RepoConfig declares one managed repo
type RepoConfig struct {
	URL string `toml:"url"` // host/owner/name, scheme optional
}

// Config holds the mgit configuration
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Ensure    EnsureConfig    `toml:"ensure"`
	Doctor    DoctorConfig    `toml:"doctor"`
	Theme     ThemeConfig     `toml:"theme"`
	Repos     []RepoConfig    `toml:"repos"`

	// File is the path the config was loaded from, empty for defaults.
	File string `toml:"-"`
}

// Duration is a time.Duration that reads and writes as "10s" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Workspace: WorkspaceConfig{Root: DefaultRoot},
		Ensure: EnsureConfig{
			VSCodeWorkspace:  true,
			DepsFolders:      true,
			WorkspaceMatcher: "strict",
			Jobs:             4,
		},
		Doctor: DoctorConfig{
			ProbeTimeout: Duration{DefaultProbeTimeout},
		},
		Theme: ThemeConfig{Name: "default", Mode: "auto"},
	}
}

// Path returns the config file path: $MGIT_CONFIG or ~/.config/mgit/config.toml
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mgit", "config.toml"), nil
}

// Load reads the config from Path().
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path, layering it over Default().
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	root, err := expandPath(cfg.Workspace.Root)
	if err != nil {
		return Default(), fmt.Errorf("expand workspace.root: %w", err)
	}
	cfg.Workspace.Root = root

	return cfg, nil
}

// ResolveRoot returns the workspace root: flag > $MGIT_ROOT > config > default.
// The result is absolute with ~ expanded.
func (c *Config) ResolveRoot(flag string) (string, error) {
	root := flag
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		root = c.Workspace.Root
	}
	if root == "" {
		root = DefaultRoot
	}

	expanded, err := expandPath(root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve workspace root %q: %w", root, err)
	}
	return abs, nil
}

// RepoURLs returns the declared managed repo URLs in declaration order
func (c *Config) RepoURLs() []string {
	urls := make([]string, 0, len(c.Repos))
	for _, r := range c.Repos {
		urls = append(urls, r.URL)
	}
	return urls
}

// WriteDefault writes DefaultFileContent to path.
// Refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultFileContent), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// DefaultFileContent is written by `mgit config init`
const DefaultFileContent = `# mgit configuration

[workspace]
# Managed repos are cloned to <root>/<host>/<owner>/<name>.
# Overridden by --root and $MGIT_ROOT.
root = "~/workspaces"

[ensure]
# Create <name>.mgit.code-workspace in each repo if no workspace file exists.
vscode_workspace = true
# Create folders referenced by the repo's VS Code workspace files.
deps_folders = true
# "strict" only considers *.mgit.code-workspace, "relaxed" any *.code-workspace.
workspace_matcher = "strict"
# Number of repos synced concurrently.
jobs = 4

[doctor]
# Exit with status 1 when any check reports a warning.
strict = false
# Upper bound for each external probe (git --version, gh auth status, ...).
probe_timeout = "10s"

[theme]
# default, none, dracula, nord
name = "default"
# auto, light, dark
mode = "auto"
# Use emoji glyphs for report lines.
emoji = false

# Managed repos, synced by 'mgit ensure':
#
# [[repos]]
# url = "github.com/netspective-labs/sql-aide"
`
