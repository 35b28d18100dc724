package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/raphi011/mgit/internal/cmd"
	"github.com/raphi011/mgit/internal/registry"
)

const testHost = "example.test"

// gitEnv points https://example.test/ at a local remotes directory and sets
// an identity for commits. Tests using it cannot run in parallel.
func gitEnv(t *testing.T) string {
	t.Helper()
	remotes := resolveTempDir(t)
	settings := [][2]string{
		{"url." + remotes + "/.insteadOf", "https://" + testHost + "/"},
		{"user.name", "Test User"},
		{"user.email", "test@test.com"},
		{"commit.gpgsign", "false"},
		{"init.defaultBranch", "main"},
	}
	t.Setenv("GIT_CONFIG_COUNT", strconv.Itoa(len(settings)))
	for i, kv := range settings {
		t.Setenv("GIT_CONFIG_KEY_"+strconv.Itoa(i), kv[0])
		t.Setenv("GIT_CONFIG_VALUE_"+strconv.Itoa(i), kv[1])
	}
	return remotes
}

func resolveTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := cmd.RunContext(context.Background(), dir, "git", args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

// seedRemote creates a bare remote for owner/name with one commit and
// returns a working clone that can push to it.
func seedRemote(t *testing.T, remotes, owner, name string, files map[string]string) string {
	t.Helper()
	work := filepath.Join(resolveTempDir(t), name)
	runGit(t, "", "init", work)
	for f, content := range files {
		writeFile(t, filepath.Join(work, f), content)
	}
	writeFile(t, filepath.Join(work, "README.md"), "# "+name+"\n")
	runGit(t, work, "add", "-A")
	runGit(t, work, "commit", "-m", "initial")

	bare := filepath.Join(remotes, owner, name+".git")
	runGit(t, "", "clone", "--quiet", "--bare", work, bare)
	runGit(t, work, "remote", "add", "origin", bare)
	runGit(t, work, "fetch", "--quiet", "origin")
	runGit(t, work, "branch", "--set-upstream-to=origin/main")
	return work
}

func pushCommit(t *testing.T, work, file, content string) {
	t.Helper()
	writeFile(t, filepath.Join(work, file), content)
	runGit(t, work, "add", file)
	runGit(t, work, "commit", "-m", "update "+file)
	runGit(t, work, "push", "--quiet", "origin", "main")
}

func testRepo(t *testing.T, root, owner, name string) Repo {
	t.Helper()
	r, err := ParseRepo(testHost+"/"+owner+"/"+name, Context{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestEnsureRepo_Lifecycle(t *testing.T) {
	remotes := gitEnv(t)
	work := seedRemote(t, remotes, "org", "app", map[string]string{
		"app.mgit.code-workspace": `{
  // opens the shared lib next to this repo
  "folders": [{ "path": "." }, { "path": "../lib" },],
}`,
	})

	root := resolveTempDir(t)
	regPath := filepath.Join(resolveTempDir(t), "repos.json")
	synced := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	opts := EnsureOptions{
		VSCodeWorkspace: true,
		DepsFolders:     true,
		Registry:        regPath,
		Now:             func() time.Time { return synced },
	}
	repo := testRepo(t, root, "org", "app")
	ctx := context.Background()

	// First run clones
	res, err := EnsureRepo(ctx, repo, opts)
	if err != nil {
		t.Fatalf("EnsureRepo(clone) = %v", err)
	}
	if res.Action != ActionCloned {
		t.Errorf("Action = %q, want %q", res.Action, ActionCloned)
	}
	if res.WorkspaceFile != "" {
		t.Errorf("WorkspaceFile = %q, want existing file kept", res.WorkspaceFile)
	}
	if want := []string{filepath.Join(root, testHost, "org", "lib")}; len(res.CreatedFolders) != 1 || res.CreatedFolders[0] != want[0] {
		t.Errorf("CreatedFolders = %v, want %v", res.CreatedFolders, want)
	}

	reg, err := registry.LoadFrom(regPath)
	if err != nil {
		t.Fatal(err)
	}
	entry, err := reg.Find(repo.Slug())
	if err != nil {
		t.Fatalf("repo not recorded: %v", err)
	}
	if entry.Path != repo.Path || !entry.SyncedAt.Equal(synced) {
		t.Errorf("registry entry = %+v", entry)
	}

	// Second run has nothing to pull
	res, err = EnsureRepo(ctx, repo, opts)
	if err != nil {
		t.Fatalf("EnsureRepo(up to date) = %v", err)
	}
	if res.Action != ActionUpToDate {
		t.Errorf("Action = %q, want %q", res.Action, ActionUpToDate)
	}

	// Upstream moves: fast-forward
	pushCommit(t, work, "CHANGELOG.md", "v2\n")
	res, err = EnsureRepo(ctx, repo, opts)
	if err != nil {
		t.Fatalf("EnsureRepo(pull) = %v", err)
	}
	if res.Action != ActionPulled {
		t.Errorf("Action = %q, want %q", res.Action, ActionPulled)
	}
	if _, err := os.Stat(filepath.Join(repo.Path, "CHANGELOG.md")); err != nil {
		t.Errorf("pulled file missing: %v", err)
	}

	// Local edits: fetch only
	pushCommit(t, work, "CHANGELOG.md", "v3\n")
	writeFile(t, filepath.Join(repo.Path, "scratch.txt"), "wip")
	res, err = EnsureRepo(ctx, repo, opts)
	if err != nil {
		t.Fatalf("EnsureRepo(dirty) = %v", err)
	}
	if res.Action != ActionSkipped || res.Reason == "" {
		t.Errorf("result = %+v, want skipped with reason", res)
	}
}

func TestEnsureRepo_ScaffoldsWorkspaceFile(t *testing.T) {
	remotes := gitEnv(t)
	seedRemote(t, remotes, "org", "plain", nil)

	repo := testRepo(t, resolveTempDir(t), "org", "plain")
	res, err := EnsureRepo(context.Background(), repo, EnsureOptions{VSCodeWorkspace: true})
	if err != nil {
		t.Fatalf("EnsureRepo() = %v", err)
	}
	if want := filepath.Join(repo.Path, "plain.mgit.code-workspace"); res.WorkspaceFile != want {
		t.Errorf("WorkspaceFile = %q, want %q", res.WorkspaceFile, want)
	}
}

func TestEnsureRepo_NotAGitRepo(t *testing.T) {
	t.Parallel()

	repo := testRepo(t, t.TempDir(), "org", "junk")
	if err := os.MkdirAll(repo.Path, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := EnsureRepo(context.Background(), repo, EnsureOptions{})
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("EnsureRepo() error = %v, want ErrNotGitRepo", err)
	}
}

func TestEnsureAll_KeepsOrderAndIsolatesFailures(t *testing.T) {
	remotes := gitEnv(t)
	seedRemote(t, remotes, "org", "one", nil)
	seedRemote(t, remotes, "org", "three", nil)

	root := resolveTempDir(t)
	repos := []Repo{
		testRepo(t, root, "org", "one"),
		testRepo(t, root, "org", "missing"),
		testRepo(t, root, "org", "three"),
	}

	var finished int
	results := EnsureAll(context.Background(), repos, EnsureOptions{}, 2, func(EnsureResult) { finished++ })

	if finished != len(repos) {
		t.Errorf("done called %d times, want %d", finished, len(repos))
	}
	for i, r := range results {
		if r.Repo.Slug() != repos[i].Slug() {
			t.Errorf("results[%d] = %s, want %s", i, r.Repo.Slug(), repos[i].Slug())
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("healthy repos failed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil || results[1].Action != ActionFailed {
		t.Errorf("missing remote should fail, got %+v", results[1])
	}
	if failed := Failed(results); len(failed) != 1 {
		t.Errorf("Failed() = %d results, want 1", len(failed))
	}
}

func TestPruneRegistry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kept := filepath.Join(dir, "kept")
	if err := os.Mkdir(kept, 0o755); err != nil {
		t.Fatal(err)
	}
	regPath := filepath.Join(dir, "repos.json")
	err := registry.Update(regPath, func(reg *registry.Registry) error {
		reg.Upsert(registry.Entry{Slug: "github.com/org/kept", Path: kept})
		reg.Upsert(registry.Entry{Slug: "github.com/org/gone", Path: filepath.Join(dir, "gone")})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	pruned, err := PruneRegistry(regPath)
	if err != nil {
		t.Fatalf("PruneRegistry() = %v", err)
	}
	if len(pruned) != 1 || pruned[0].Slug != "github.com/org/gone" {
		t.Errorf("pruned = %+v, want only github.com/org/gone", pruned)
	}

	reg, err := registry.LoadFrom(regPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Repos) != 1 || reg.Repos[0].Slug != "github.com/org/kept" {
		t.Errorf("registry after prune = %+v", reg.Repos)
	}
}
