package workspace

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParseRepo(t *testing.T) {
	t.Parallel()

	wc := Context{Root: "/ws"}
	tests := []struct {
		input string
		slug  string
		path  string
	}{
		{"github.com/netspective-labs/sql-aide", "github.com/netspective-labs/sql-aide", "/ws/github.com/netspective-labs/sql-aide"},
		{"https://github.com/org/repo.git", "github.com/org/repo", "/ws/github.com/org/repo"},
		{"GitHub.com/Org/Repo/", "github.com/Org/Repo", "/ws/github.com/Org/Repo"},
		{"  gitlab.com/group/app  ", "gitlab.com/group/app", "/ws/gitlab.com/group/app"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			r, err := ParseRepo(tt.input, wc)
			if err != nil {
				t.Fatalf("ParseRepo(%q) = %v", tt.input, err)
			}
			if r.Slug() != tt.slug {
				t.Errorf("Slug() = %q, want %q", r.Slug(), tt.slug)
			}
			if r.Path != filepath.FromSlash(tt.path) {
				t.Errorf("Path = %q, want %q", r.Path, tt.path)
			}
			if want := "https://" + tt.slug + ".git"; r.CloneURL() != want {
				t.Errorf("CloneURL() = %q, want %q", r.CloneURL(), want)
			}
		})
	}
}

func TestParseRepo_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"github.com/org",
		"github.com/org/repo/extra",
		"github.com//repo",
		"github.com/../repo",
	} {
		if _, err := ParseRepo(input, Context{Root: "/ws"}); err == nil {
			t.Errorf("ParseRepo(%q) = nil, want error", input)
		}
	}

	if _, err := ParseRepo("github.com/org/repo", Context{}); err == nil {
		t.Error("ParseRepo() with empty root = nil, want error")
	}
}

func TestParseRepos_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	repos, err := ParseRepos([]string{"github.com/a/b", "bad", "github.com/c/d", "also/bad"}, Context{Root: "/ws"})
	if err == nil {
		t.Fatal("ParseRepos() = nil, want error")
	}
	for _, want := range []string{`"bad"`, `"also/bad"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
	if len(repos) != 2 {
		t.Errorf("expected the 2 valid repos, got %d", len(repos))
	}
}

func TestMatchesOrigin(t *testing.T) {
	t.Parallel()

	r := Repo{Host: "github.com", Owner: "org", Name: "repo"}
	tests := []struct {
		origin string
		want   bool
	}{
		{"https://github.com/org/repo.git", true},
		{"git@github.com:org/repo.git", true},
		{"ssh://git@github.com:22/Org/Repo", true},
		{"https://github.com/org/other.git", false},
		{"https://gitlab.com/org/repo.git", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := r.MatchesOrigin(tt.origin); got != tt.want {
			t.Errorf("MatchesOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestFilterRepos(t *testing.T) {
	t.Parallel()

	repos, err := ParseRepos([]string{
		"github.com/netspective-labs/sql-aide",
		"github.com/opsfolio/resource-surveillance",
		"gitlab.com/group/tools",
	}, Context{Root: "/ws"})
	if err != nil {
		t.Fatal(err)
	}

	slugs := func(rs []Repo) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Slug())
		}
		return out
	}

	if got := FilterRepos(repos, nil); len(got) != 3 {
		t.Errorf("FilterRepos(no patterns) = %v, want all", slugs(got))
	}

	got := slugs(FilterRepos(repos, []string{"group/tools", "sqlaide"}))
	want := []string{"github.com/netspective-labs/sql-aide", "gitlab.com/group/tools"}
	if !slices.Equal(got, want) {
		t.Errorf("FilterRepos() = %v, want %v", got, want)
	}

	if got := FilterRepos(repos, []string{"zzzz"}); len(got) != 0 {
		t.Errorf("FilterRepos(no match) = %v, want none", slugs(got))
	}
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	if _, err := NewContext("relative/root"); err == nil {
		t.Error("NewContext(relative) = nil, want error")
	}
	if _, err := NewContext(""); err == nil {
		t.Error("NewContext(empty) = nil, want error")
	}
	wc, err := NewContext("/ws/")
	if err != nil || wc.Root != filepath.Clean("/ws/") {
		t.Errorf("NewContext(/ws/) = %+v, %v", wc, err)
	}
}
