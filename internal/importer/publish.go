package importer

import (
	"context"
	"fmt"
)

// Publisher is the version-control side of an import.
type Publisher interface {
	StageAndCommit(ctx context.Context, pathspec, message string) (bool, error)
	Push(ctx context.Context, remote string) error
	HEAD(ctx context.Context) (string, error)
}

// PublishOptions controls the publish step.
type PublishOptions struct {
	Push   bool
	Remote string
}

// PublishResult reports what the publish step did.
type PublishResult struct {
	Committed bool   `json:"committed"`
	Commit    string `json:"commit,omitempty"`
	Pushed    bool   `json:"pushed"`
	Message   string `json:"message,omitempty"`
}

// CommitMessage summarizes an import for the commit log.
func CommitMessage(result Result) string {
	return fmt.Sprintf("Import LinkedIn posts (%d new, %d updated)", result.Created, result.Updated)
}

// Publish stages pathspec and commits it when anything under it is pending,
// including changes left over from an earlier run. Pushes only after a commit.
func Publish(ctx context.Context, pub Publisher, pathspec string, result Result, opts PublishOptions) (PublishResult, error) {
	msg := CommitMessage(result)

	committed, err := pub.StageAndCommit(ctx, pathspec, msg)
	if err != nil {
		return PublishResult{}, fmt.Errorf("commit: %w", err)
	}
	if !committed {
		return PublishResult{}, nil
	}

	published := PublishResult{Committed: true, Message: msg}
	sha, err := pub.HEAD(ctx)
	if err != nil {
		return published, fmt.Errorf("reading new commit: %w", err)
	}
	published.Commit = sha
	if !opts.Push {
		return published, nil
	}
	if err := pub.Push(ctx, opts.Remote); err != nil {
		return published, fmt.Errorf("push: %w", err)
	}
	published.Pushed = true
	return published, nil
}
