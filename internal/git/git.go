package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/postsync/internal/output"
)

// Repo runs git commands inside Dir. An empty Dir means the process working directory.
type Repo struct {
	Dir string
}

// Run executes a git command and returns its trimmed stdout.
// Returns an *output.ExitError on failure.
func (r Repo) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo reports whether Dir is inside a git work tree.
func (r Repo) IsRepo(ctx context.Context) bool {
	out, err := r.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Status returns `git status --porcelain` limited to pathspec.
func (r Repo) Status(ctx context.Context, pathspec string) (string, error) {
	return r.Run(ctx, "status", "--porcelain", "--", pathspec)
}

// StageAndCommit stages pathspec and, if anything under it changed, commits
// exactly that pathspec with message. Reports whether a commit was made.
func (r Repo) StageAndCommit(ctx context.Context, pathspec, message string) (bool, error) {
	if _, err := r.Run(ctx, "add", "--", pathspec); err != nil {
		return false, output.NewSystemErrorWithCause("failed to stage "+pathspec, err)
	}

	status, err := r.Status(ctx, pathspec)
	if err != nil {
		return false, output.NewSystemErrorWithCause("failed to check status of "+pathspec, err)
	}
	if status == "" {
		return false, nil
	}

	if _, err := r.Run(ctx, "commit", "-m", message, "--", pathspec); err != nil {
		return false, output.NewSystemErrorWithCause("failed to commit "+pathspec, err)
	}
	return true, nil
}

// Push pushes the current branch. With an empty remote, git's configured
// upstream is used; otherwise HEAD is pushed to the same-named branch on remote.
func (r Repo) Push(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote, "HEAD")
	}
	if _, err := r.Run(ctx, args...); err != nil {
		return output.NewSystemErrorWithCause("failed to push", err)
	}
	return nil
}

// HEAD returns the full SHA of the current HEAD commit.
func (r Repo) HEAD(ctx context.Context) (string, error) {
	sha, err := r.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get HEAD", err)
	}
	return sha, nil
}
