// Package config handles loading and validation of mgit configuration.
//
// Configuration is read from ~/.config/mgit/config.toml ($MGIT_CONFIG
// overrides the path). A missing file yields [Default] without error.
//
// # Workspace Root (highest priority first)
//
//   - --root flag
//   - MGIT_ROOT env var
//   - [workspace] root in the config file
//   - ~/workspaces
//
// # Managed Repos
//
// Repos synced by 'mgit ensure' are declared as an array of tables:
//
//	[[repos]]
//	url = "github.com/netspective-labs/sql-aide"
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
