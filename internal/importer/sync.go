package importer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/postsync/internal/config"
	"github.com/gorewood/postsync/internal/git"
	"github.com/gorewood/postsync/internal/output"
	"github.com/gorewood/postsync/internal/source"
	"github.com/gorewood/postsync/internal/store"
)

// SyncReport is the outcome of a full import: selection, materialization and
// the version-control step.
type SyncReport struct {
	Result
	Score    int           `json:"score"`
	OutDir   string        `json:"out_dir"`
	Publish  PublishResult `json:"publish"`
	Warnings []string      `json:"warnings,omitempty"`
}

// SyncOptions are the collaborators of Sync. Zero values select defaults.
type SyncOptions struct {
	Logger *log.Logger
	Now    func() time.Time
}

// Sync runs the whole pipeline for settings. Git failures are recorded as
// warnings and never fail the run. Returned errors are *output.ExitError.
func Sync(ctx context.Context, settings config.Settings, opts SyncOptions) (*SyncReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	cand, err := SelectSource(settings, logger)
	if err != nil {
		return nil, err
	}

	dir, err := store.OpenDir(settings.OutDir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("cannot create output directory: "+settings.OutDir, err)
	}

	result, err := New(dir, WithClock(opts.Now), WithLogger(logger)).Run(cand)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("import failed: "+err.Error(), err)
	}

	report := &SyncReport{Result: result, Score: cand.Score, OutDir: dir.Root()}
	if !settings.Commit {
		return report, nil
	}

	// The repository is found from the output directory, so the working
	// directory of the process does not matter.
	repo := git.Repo{Dir: dir.Root()}
	if !repo.IsRepo(ctx) {
		msg := "output directory is not in a git repository: " + dir.Root()
		logger.Warn("skipping commit", "reason", msg)
		report.Warnings = append(report.Warnings, msg)
		return report, nil
	}
	published, err := Publish(ctx, repo, ".", result, PublishOptions{Push: settings.Push, Remote: settings.Remote})
	report.Publish = published
	if err != nil {
		logger.Warn("version control step failed", "err", err)
		report.Warnings = append(report.Warnings, err.Error())
	}
	return report, nil
}

// SelectSource loads the configured rules and picks the best source file
// under settings.ExportDir.
func SelectSource(settings config.Settings, logger *log.Logger) (*source.Candidate, error) {
	selector, err := newSelector(settings, logger)
	if err != nil {
		return nil, err
	}
	cand, err := selector.Select(settings.ExportDir)
	if err != nil {
		return nil, selectionError(err)
	}
	return cand, nil
}

// Inspect scans settings.ExportDir without writing anything.
func Inspect(settings config.Settings, logger *log.Logger) (*source.Report, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	selector, err := newSelector(settings, logger)
	if err != nil {
		return nil, err
	}
	report, err := selector.Scan(settings.ExportDir)
	if err != nil {
		return nil, selectionError(err)
	}
	return report, nil
}

func newSelector(settings config.Settings, logger *log.Logger) (*source.Selector, error) {
	rules, err := source.LoadRules(settings.RulesFile)
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid rules file: "+err.Error(), err)
	}
	return source.NewSelector(rules, logger), nil
}

// selectionError maps selector failures onto exit codes.
func selectionError(err error) error {
	var noSource *source.NoSourceError
	if errors.Is(err, source.ErrNoTabularFiles) || errors.As(err, &noSource) {
		return output.NewNoSourceError(err)
	}
	return output.NewSystemErrorWithCause("scanning export failed: "+err.Error(), err)
}
