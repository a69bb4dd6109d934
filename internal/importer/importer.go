// Package importer turns the rows of a selected export file into post files.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/postsync/internal/post"
	"github.com/gorewood/postsync/internal/source"
	"github.com/gorewood/postsync/internal/store"
)

// Result counts what a run did.
// Created and Updated are the only counts that imply a change on disk.
type Result struct {
	Source     string   `json:"source"`
	TextColumn string   `json:"text_column"`
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Unchanged  int      `json:"unchanged"`
	Skipped    int      `json:"skipped"`
	Malformed  int      `json:"malformed"`
	Files      []string `json:"files,omitempty"`
}

// Changed reports whether any file was created or updated.
func (r Result) Changed() bool {
	return r.Created+r.Updated > 0
}

// Materializer writes one file per non-blank row into a Store.
type Materializer struct {
	store  store.Store
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithClock overrides the clock used for undated rows.
func WithClock(now func() time.Time) Option {
	return func(m *Materializer) { m.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Materializer) { m.logger = logger }
}

// New creates a Materializer writing into st.
func New(st store.Store, opts ...Option) *Materializer {
	m := &Materializer{
		store:  st,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run reads every row of cand and writes or updates the matching post files.
// Rows with blank text are skipped; malformed records are counted and skipped.
// Fails only if the source cannot be read or a file cannot be written.
func (m *Materializer) Run(cand *source.Candidate) (Result, error) {
	result := Result{Source: cand.Rel, TextColumn: cand.TextColumn}

	table, err := source.OpenTable(cand.Path)
	if err != nil {
		return result, fmt.Errorf("opening source: %w", err)
	}
	defer table.Close() //nolint:errcheck // read-only

	textIdx := table.Column(cand.TextColumn)
	if textIdx < 0 {
		return result, fmt.Errorf("text column %q not in header of %s", cand.TextColumn, cand.Rel)
	}
	dateIdx := table.Column(cand.DateColumn)
	urlIdx := table.Column(cand.URLColumn)
	now := m.now()

	for {
		row, err := table.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			m.logger.Warn("skipping malformed record", "file", cand.Rel, "line", parseErr.Line, "err", parseErr.Err)
			result.Malformed++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", cand.Rel, err)
		}

		rec, ok := post.NewRecord(row.Get(textIdx), row.Get(dateIdx), row.Get(urlIdx), now)
		if !ok {
			result.Skipped++
			continue
		}

		if err := m.put(rec, &result); err != nil {
			return result, err
		}
	}

	m.logger.Debug("import finished", "source", cand.Rel, "created", result.Created,
		"updated", result.Updated, "unchanged", result.Unchanged, "skipped", result.Skipped)
	return result, nil
}

// put performs the read-compare-write for one record.
func (m *Materializer) put(rec post.Record, result *Result) error {
	name := rec.Filename()
	content := rec.Render()

	existing, err := m.store.Read(name)
	switch {
	case err == nil && bytes.Equal(existing, content):
		result.Unchanged++
		return nil
	case err == nil:
		if err := m.store.Write(name, content); err != nil {
			return err
		}
		m.logger.Debug("updated", "file", name)
		result.Updated++
	case errors.Is(err, fs.ErrNotExist):
		if err := m.store.Write(name, content); err != nil {
			return err
		}
		m.logger.Debug("created", "file", name)
		result.Created++
	default:
		return err
	}

	result.Files = append(result.Files, name)
	return nil
}
