package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/mgit/internal/git"
)

// Repo is a managed repo and where it lives in the workspace.
type Repo struct {
	Host  string
	Owner string
	Name  string
	Path  string // <root>/<host>/<owner>/<name>
}

// ParseRepo parses "host/owner/name" into a Repo under wc.Root.
// A scheme prefix ("https://") and a ".git" suffix are accepted and dropped.
func ParseRepo(urlWithoutScheme string, wc Context) (Repo, error) {
	s := strings.TrimSpace(urlWithoutScheme)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Repo{}, fmt.Errorf("invalid repo %q: expected host/owner/name", urlWithoutScheme)
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return Repo{}, fmt.Errorf("invalid repo %q: empty or relative path segment", urlWithoutScheme)
		}
	}
	if wc.Root == "" {
		return Repo{}, errors.New("workspace root is empty")
	}

	host := strings.ToLower(parts[0])
	return Repo{
		Host:  host,
		Owner: parts[1],
		Name:  parts[2],
		Path:  filepath.Join(wc.Root, host, parts[1], parts[2]),
	}, nil
}

// ParseRepos parses every url, reporting all invalid ones at once.
func ParseRepos(urls []string, wc Context) ([]Repo, error) {
	repos := make([]Repo, 0, len(urls))
	var errs []error
	for _, u := range urls {
		r, err := ParseRepo(u, wc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		repos = append(repos, r)
	}
	return repos, errors.Join(errs...)
}

// Slug returns "host/owner/name".
func (r Repo) Slug() string {
	return r.Host + "/" + r.Owner + "/" + r.Name
}

// CloneURL returns the https clone URL.
func (r Repo) CloneURL() string {
	return "https://" + r.Slug() + ".git"
}

// MatchesOrigin reports whether originURL points at this repo, whatever
// protocol it uses.
func (r Repo) MatchesOrigin(originURL string) bool {
	normalized, err := git.NormalizeRemoteURL(originURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(normalized, r.Slug())
}

// FilterRepos returns the repos whose slug fuzzy-matches any of patterns,
// keeping declaration order. No patterns keeps every repo.
func FilterRepos(repos []Repo, patterns []string) []Repo {
	if len(patterns) == 0 {
		return repos
	}

	slugs := make([]string, len(repos))
	for i, r := range repos {
		slugs[i] = r.Slug()
	}

	keep := make([]bool, len(repos))
	for _, p := range patterns {
		for _, m := range fuzzy.Find(p, slugs) {
			keep[m.Index] = true
		}
	}

	var out []Repo
	for i, r := range repos {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}
