package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/postsync/internal/output"
)

// initRepo creates a throwaway repository with one commit.
// Skips the test when git is not installed.
func initRepo(t *testing.T) Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(dir, "README.md"), "notes\n")
	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "--quiet", "-m", "Initial commit")
	return Repo{Dir: dir}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	ctx := context.Background()

	t.Run("git version succeeds", func(t *testing.T) {
		out, err := Repo{}.Run(ctx, "version")
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "git version") {
			t.Errorf("Run() = %q", out)
		}
	})

	t.Run("invalid command", func(t *testing.T) {
		_, err := Repo{}.Run(ctx, "invalid-command-that-does-not-exist")
		var exitErr *output.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Run() error should be *output.ExitError, got %T", err)
		}
		if exitErr.Code != output.ExitSystemError {
			t.Errorf("exit code = %d, want %d", exitErr.Code, output.ExitSystemError)
		}
		if !strings.Contains(exitErr.Message, "git command failed") {
			t.Errorf("message = %q", exitErr.Message)
		}
	})
}

func TestIsRepo(t *testing.T) {
	repo := initRepo(t)
	ctx := context.Background()

	if !repo.IsRepo(ctx) {
		t.Error("IsRepo() = false inside a fresh repository")
	}
	if (Repo{Dir: t.TempDir()}).IsRepo(ctx) {
		t.Error("IsRepo() = true outside a repository")
	}
}

func TestStageAndCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("commits new files under pathspec only", func(t *testing.T) {
		repo := initRepo(t)
		writeFile(t, filepath.Join(repo.Dir, "posts", "2024-01-01-hello-abc.md"), "hello\n")
		writeFile(t, filepath.Join(repo.Dir, "scratch.txt"), "unrelated\n")

		committed, err := repo.StageAndCommit(ctx, "posts", "Import LinkedIn posts (1 new, 0 updated)")
		if err != nil {
			t.Fatalf("StageAndCommit() error = %v", err)
		}
		if !committed {
			t.Fatal("StageAndCommit() = false, want a commit")
		}

		subject := runGit(t, repo.Dir, "log", "-1", "--pretty=%s")
		if subject != "Import LinkedIn posts (1 new, 0 updated)" {
			t.Errorf("commit subject = %q", subject)
		}
		files := runGit(t, repo.Dir, "show", "--name-only", "--pretty=format:", "HEAD")
		if files != "posts/2024-01-01-hello-abc.md" {
			t.Errorf("committed files = %q", files)
		}
		if status := runGit(t, repo.Dir, "status", "--porcelain"); !strings.Contains(status, "scratch.txt") {
			t.Errorf("scratch.txt should stay uncommitted, status = %q", status)
		}
	})

	t.Run("nothing to commit", func(t *testing.T) {
		repo := initRepo(t)
		writeFile(t, filepath.Join(repo.Dir, "posts", "a.md"), "a\n")
		if _, err := repo.StageAndCommit(ctx, "posts", "first"); err != nil {
			t.Fatal(err)
		}
		before, _ := repo.HEAD(ctx)

		committed, err := repo.StageAndCommit(ctx, "posts", "second")
		if err != nil {
			t.Fatalf("StageAndCommit() error = %v", err)
		}
		if committed {
			t.Error("StageAndCommit() = true with no changes")
		}
		if after, _ := repo.HEAD(ctx); after != before {
			t.Error("HEAD moved without changes")
		}
	})

	t.Run("outside a repository", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "posts", "a.md"), "a\n")
		if _, err := (Repo{Dir: dir}).StageAndCommit(ctx, "posts", "msg"); err == nil {
			t.Error("StageAndCommit() expected error outside a repository")
		}
	})
}

func TestPush(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t)

	remote := t.TempDir()
	runGit(t, remote, "init", "--quiet", "--bare")
	runGit(t, repo.Dir, "remote", "add", "origin", remote)

	if err := repo.Push(ctx, "origin"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	head, err := repo.HEAD(ctx)
	if err != nil {
		t.Fatal(err)
	}
	branch := runGit(t, repo.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if got := runGit(t, remote, "rev-parse", branch); got != head {
		t.Errorf("remote %s = %q, want %q", branch, got, head)
	}

	if err := repo.Push(ctx, "missing-remote"); err == nil {
		t.Error("Push() expected error for unknown remote")
	}
}
