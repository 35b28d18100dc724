package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidWorkspaceMatchers = []string{"strict", "relaxed"}
	ValidThemeNames        = []string{"default", "none", "dracula", "nord"}
	ValidThemeModes        = []string{"auto", "light", "dark"}
)

// Validate checks field values and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if err := ValidatePath(c.Workspace.Root, "workspace.root"); err != nil {
		errs = append(errs, err)
	}
	if err := validateEnum(c.Ensure.WorkspaceMatcher, "ensure.workspace_matcher", ValidWorkspaceMatchers); err != nil {
		errs = append(errs, err)
	}
	if c.Ensure.Jobs < 1 {
		errs = append(errs, fmt.Errorf("invalid ensure.jobs %d: must be at least 1", c.Ensure.Jobs))
	}
	if c.Doctor.ProbeTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("invalid doctor.probe_timeout %s: must be positive", c.Doctor.ProbeTimeout))
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		errs = append(errs, err)
	}
	if err := validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]int, len(c.Repos))
	for i, r := range c.Repos {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			errs = append(errs, fmt.Errorf("repos[%d]: url is required", i))
			continue
		}
		if prev, dup := seen[url]; dup {
			errs = append(errs, fmt.Errorf("repos[%d]: %q already declared at repos[%d]", i, url, prev))
			continue
		}
		seen[url] = i
	}

	return errors.Join(errs...)
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
