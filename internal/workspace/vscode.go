package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tidwall/jsonc"
)

// Workspace file patterns, matched against file names in the repo root.
const (
	strictPattern  = "*.mgit.code-workspace"
	relaxedPattern = "*.code-workspace"
)

// StrictMatchers only accepts mgit-managed workspace files.
func StrictMatchers() []string { return []string{strictPattern} }

// RelaxedMatchers accepts any VS Code workspace file.
func RelaxedMatchers() []string { return []string{relaxedPattern} }

// MatchersFor returns the matchers for a config name ("strict" or "relaxed").
func MatchersFor(name string) []string {
	if name == "relaxed" {
		return RelaxedMatchers()
	}
	return StrictMatchers()
}

// codeWorkspace is the subset of a .code-workspace file mgit reads.
type codeWorkspace struct {
	Folders []workspaceFolder `json:"folders"`
}

type workspaceFolder struct {
	Path string `json:"path"`
}

// FindWorkspaceFiles lists files in dir whose name matches any matcher, sorted.
func FindWorkspaceFiles(dir string, matchers []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, m := range matchers {
			ok, err := filepath.Match(m, e.Name())
			if err != nil {
				return nil, fmt.Errorf("invalid workspace matcher %q: %w", m, err)
			}
			if ok {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

// WorkspaceFileName returns the file scaffolded for repo.
func WorkspaceFileName(repo Repo) string {
	return repo.Name + ".mgit.code-workspace"
}

// ensureWorkspaceFile creates <name>.mgit.code-workspace unless a file
// matching matchers already exists. Returns the created path or "".
func ensureWorkspaceFile(repo Repo, matchers []string) (string, error) {
	existing, err := FindWorkspaceFiles(repo.Path, matchers)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", nil
	}

	data, err := json.MarshalIndent(codeWorkspace{Folders: []workspaceFolder{{Path: "."}}}, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(repo.Path, WorkspaceFileName(repo))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write workspace file: %w", err)
	}
	return path, nil
}

// readWorkspaceFile parses a .code-workspace file, which may contain
// comments and trailing commas.
func readWorkspaceFile(path string) (codeWorkspace, error) {
	var ws codeWorkspace
	data, err := os.ReadFile(path)
	if err != nil {
		return ws, err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &ws); err != nil {
		return ws, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return ws, nil
}

// ensureDepsFolders creates every missing relative folder referenced by
// the repo's workspace files and returns the directories it created.
func ensureDepsFolders(repo Repo, matchers []string) ([]string, error) {
	files, err := FindWorkspaceFiles(repo.Path, matchers)
	if err != nil {
		return nil, err
	}

	var created []string
	var errs []error
	for _, file := range files {
		ws, err := readWorkspaceFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, f := range ws.Folders {
			if f.Path == "" || filepath.IsAbs(f.Path) {
				continue
			}
			dir := filepath.Join(filepath.Dir(file), f.Path)
			if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errs = append(errs, fmt.Errorf("create %s: %w", dir, err))
				continue
			}
			created = append(created, dir)
		}
	}
	return created, errors.Join(errs...)
}
