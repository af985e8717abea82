package adapter

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/docgenie/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "Test")
	gitCmd(t, dir, "config", "commit.gpgsign", "false")

	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git %v: %s", args, out)
}

func TestLocalGitAdapter_Diff(t *testing.T) {
	dir := initGitRepo(t)
	path := filepath.Join(dir, "a.js")

	require.NoError(t, os.WriteFile(path, []byte("one();\n"), 0o644))
	gitCmd(t, dir, "add", "a.js")
	gitCmd(t, dir, "commit", "-q", "-m", "init")

	require.NoError(t, os.WriteFile(path, []byte("one();\nfunction two() {}\n"), 0o644))

	git := NewLocalGitAdapter()
	ctx := context.Background()

	t.Run("working tree", func(t *testing.T) {
		out, err := git.Diff(ctx, m.Path(dir), DiffOptions{ContextLines: 1})
		require.NoError(t, err)
		assert.Contains(t, out, "diff --git a/a.js b/a.js")
		assert.Contains(t, out, "+function two() {}")
	})

	t.Run("staged is empty before add", func(t *testing.T) {
		out, err := git.Diff(ctx, m.Path(dir), DiffOptions{Staged: true, ContextLines: 1})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("staged after add", func(t *testing.T) {
		gitCmd(t, dir, "add", "a.js")

		out, err := git.Diff(ctx, m.Path(dir), DiffOptions{Staged: true, ContextLines: 0, Paths: []string{"a.js"}})
		require.NoError(t, err)
		assert.Contains(t, out, "@@ -1,0 +2 @@")
	})
}

func TestLocalGitAdapter_RepoRoot(t *testing.T) {
	dir := initGitRepo(t)
	sub := filepath.Join(dir, "src", "lib")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := NewLocalGitAdapter().RepoRoot(context.Background(), m.Path(sub))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(root))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocalGitAdapter_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	_, err := NewLocalGitAdapter().RepoRoot(context.Background(), m.Path(t.TempDir()))
	assert.Error(t, err)
}
