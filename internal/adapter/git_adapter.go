package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	m "github.com/mouse-blink/docgenie/internal/model"
)

// DiffOptions selects which change set GitAdapter.Diff returns.
type DiffOptions struct {
	// Staged compares the index against HEAD instead of the working tree
	// against the index.
	Staged bool
	// ContextLines is passed to git as -U<n>.
	ContextLines int
	// Paths limits the diff to the given pathspecs.
	Paths []string
}

// GitAdapter runs the git commands docgenie needs.
type GitAdapter interface {
	// Diff returns unified diff text for the repository at dir.
	Diff(ctx context.Context, dir m.Path, opts DiffOptions) (string, error)
	// RepoRoot returns the top-level directory of the repository containing dir.
	RepoRoot(ctx context.Context, dir m.Path) (m.Path, error)
}

// LocalGitAdapter shells out to the git binary.
type LocalGitAdapter struct {
	binary string
}

// NewLocalGitAdapter creates a LocalGitAdapter that uses git from PATH.
func NewLocalGitAdapter() *LocalGitAdapter {
	return &LocalGitAdapter{binary: "git"}
}

// Diff runs `git diff` with color and external diff drivers disabled.
func (g *LocalGitAdapter) Diff(ctx context.Context, dir m.Path, opts DiffOptions) (string, error) {
	args := []string{"diff", "--no-color", "--no-ext-diff", "-U" + strconv.Itoa(opts.ContextLines)}
	if opts.Staged {
		args = append(args, "--cached")
	}

	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}

	return g.run(ctx, dir, args...)
}

// RepoRoot runs `git rev-parse --show-toplevel`.
func (g *LocalGitAdapter) RepoRoot(ctx context.Context, dir m.Path) (m.Path, error) {
	out, err := g.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	return m.Path(strings.TrimSpace(out)), nil
}

func (g *LocalGitAdapter) run(ctx context.Context, dir m.Path, args ...string) (string, error) {
	// #nosec G204 - arguments are built from fixed flags and operator-supplied pathspecs
	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = string(dir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}

		return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
	}

	return stdout.String(), nil
}
