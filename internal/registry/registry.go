// Package registry records managed repos synced by mgit in ~/.mgit/repos.json
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/mgit/internal/storage"
)

// ErrNotFound indicates the repo has never been synced
var ErrNotFound = errors.New("repo not registered")

// Entry records one synced repo
type Entry struct {
	Slug     string    `json:"slug"`      // host/owner/name
	Path     string    `json:"path"`      // absolute checkout path
	SyncedAt time.Time `json:"synced_at"` // last successful ensure
}

// Registry holds all synced repos, ordered by slug
type Registry struct {
	Repos []Entry `json:"repos"`

	path string
}

// Path returns the path to the registry file in the state directory
func Path() (string, error) {
	dir, err := storage.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repos.json"), nil
}

// Load reads the registry from Path().
// Returns an empty registry if the file doesn't exist.
func Load() (*Registry, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the registry from path.
func LoadFrom(path string) (*Registry, error) {
	reg := &Registry{Repos: []Entry{}, path: path}
	if err := storage.LoadJSON(path, reg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return reg, nil
}

// Save writes the registry back to the file it was loaded from
func (r *Registry) Save() error {
	if r.path == "" {
		return errors.New("save registry: no backing file")
	}
	if err := storage.SaveJSON(r.path, r); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// Update loads the registry at path, applies fn and saves it, holding an
// exclusive lock for the whole read-modify-write.
func Update(path string, fn func(*Registry) error) error {
	return storage.WithLock(path+".lock", func() error {
		reg, err := LoadFrom(path)
		if err != nil {
			return err
		}
		if err := fn(reg); err != nil {
			return err
		}
		return reg.Save()
	})
}

// Upsert adds e or replaces the entry with the same slug.
func (r *Registry) Upsert(e Entry) {
	if i := r.index(e.Slug); i >= 0 {
		r.Repos[i] = e
		return
	}
	r.Repos = append(r.Repos, e)
	slices.SortFunc(r.Repos, func(a, b Entry) int {
		switch {
		case a.Slug < b.Slug:
			return -1
		case a.Slug > b.Slug:
			return 1
		}
		return 0
	})
}

// Find looks up an entry by slug
func (r *Registry) Find(slug string) (*Entry, error) {
	if i := r.index(slug); i >= 0 {
		return &r.Repos[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Remove unregisters an entry by slug
func (r *Registry) Remove(slug string) error {
	i := r.index(slug)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	r.Repos = slices.Delete(r.Repos, i, i+1)
	return nil
}

// Stale returns entries whose checkout path no longer exists
func (r *Registry) Stale() []Entry {
	var stale []Entry
	for _, e := range r.Repos {
		if _, err := os.Stat(e.Path); errors.Is(err, os.ErrNotExist) {
			stale = append(stale, e)
		}
	}
	return stale
}

func (r *Registry) index(slug string) int {
	return slices.IndexFunc(r.Repos, func(e Entry) bool { return e.Slug == slug })
}
