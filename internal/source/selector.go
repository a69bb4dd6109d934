package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Score bonuses for optional columns.
const (
	dateBonus = 10
	urlBonus  = 5
)

// Reason explains why a tabular file was not a candidate.
type Reason string

// Rejection reasons.
const (
	ReasonBlocked    Reason = "blocked keyword"
	ReasonNotAllowed Reason = "no allowed keyword"
	ReasonNoText     Reason = "no text column"
	ReasonEmpty      Reason = "no non-empty text rows"
	ReasonUnreadable Reason = "unreadable"
)

// Candidate is a tabular file that may hold post content, with its resolved columns.
type Candidate struct {
	Path       string `json:"path"`
	Rel        string `json:"rel"`
	TextColumn string `json:"text_column"`
	DateColumn string `json:"date_column,omitempty"`
	URLColumn  string `json:"url_column,omitempty"`
	NonEmpty   int    `json:"non_empty_rows"`
	Score      int    `json:"score"`
}

// Rejection records a tabular file that was filtered out.
type Rejection struct {
	Rel    string `json:"rel"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Report is the full outcome of scanning an export.
type Report struct {
	Root       string      `json:"root"`
	Seen       []string    `json:"seen"`
	Candidates []Candidate `json:"candidates"`
	Rejected   []Rejection `json:"rejected,omitempty"`
}

// Selector scores the tabular files of an export against a set of Rules.
type Selector struct {
	rules  Rules
	logger *log.Logger
}

// NewSelector creates a Selector. A nil logger discards diagnostics.
func NewSelector(rules Rules, logger *log.Logger) *Selector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rules = rules.normalized()
	if rules.SampleLimit <= 0 {
		rules.SampleLimit = DefaultSampleLimit
	}
	return &Selector{rules: rules, logger: logger}
}

// Select returns the highest-scoring candidate under root.
// Returns ErrNoTabularFiles if root holds no tabular files and
// *NoSourceError if none of them qualifies.
func (s *Selector) Select(root string) (*Candidate, error) {
	report, err := s.Scan(root)
	if err != nil {
		return nil, err
	}
	if len(report.Candidates) == 0 {
		return nil, &NoSourceError{Root: root, Seen: report.Seen}
	}

	best := report.Candidates[0]
	s.logger.Info("selected source", "file", best.Rel, "text", best.TextColumn, "score", best.Score)
	return &best, nil
}

// Scan evaluates every tabular file under root. Candidates are ordered by
// descending score; equal scores keep enumeration order.
func (s *Selector) Scan(root string) (*Report, error) {
	paths, err := s.enumerate(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoTabularFiles, root)
	}

	report := &Report{Root: root}
	for _, path := range paths {
		rel := relPath(root, path)
		report.Seen = append(report.Seen, rel)

		cand, rejection := s.evaluate(path, rel)
		if rejection != nil {
			s.logger.Debug("skipped file", "file", rel, "reason", rejection.Reason, "detail", rejection.Detail)
			report.Rejected = append(report.Rejected, *rejection)
			continue
		}
		s.logger.Debug("candidate", "file", rel, "text", cand.TextColumn,
			"date", cand.DateColumn, "url", cand.URLColumn, "rows", cand.NonEmpty, "score", cand.Score)
		report.Candidates = append(report.Candidates, *cand)
	}

	sort.SliceStable(report.Candidates, func(i, j int) bool {
		return report.Candidates[i].Score > report.Candidates[j].Score
	})
	sort.Strings(report.Seen)
	return report, nil
}

// enumerate lists tabular files under root in lexical walk order.
// Unreadable subdirectories are skipped.
func (s *Selector) enumerate(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Debug("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsTabular(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return paths, nil
}

// evaluate applies the filename filters, header matching and sampling to one file.
func (s *Selector) evaluate(path, rel string) (*Candidate, *Rejection) {
	name := filepath.Base(path)
	if keyword := firstKeyword(name, s.rules.Block); keyword != "" {
		return nil, &Rejection{Rel: rel, Reason: ReasonBlocked, Detail: keyword}
	}
	if firstKeyword(name, s.rules.Allow) == "" {
		return nil, &Rejection{Rel: rel, Reason: ReasonNotAllowed}
	}

	table, err := OpenTable(path)
	if err != nil {
		return nil, &Rejection{Rel: rel, Reason: ReasonUnreadable, Detail: err.Error()}
	}
	defer table.Close() //nolint:errcheck // read-only

	cand := &Candidate{
		Path:       path,
		Rel:        rel,
		TextColumn: matchColumn(table.Header(), s.rules.TextColumns),
		DateColumn: matchColumn(table.Header(), s.rules.DateColumns),
		URLColumn:  matchColumn(table.Header(), s.rules.URLColumns),
	}
	if cand.TextColumn == "" {
		return nil, &Rejection{Rel: rel, Reason: ReasonNoText, Detail: strings.Join(table.Header(), ",")}
	}

	nonEmpty, err := s.countNonEmpty(table, table.Column(cand.TextColumn))
	if err != nil {
		return nil, &Rejection{Rel: rel, Reason: ReasonUnreadable, Detail: err.Error()}
	}
	if nonEmpty == 0 {
		return nil, &Rejection{Rel: rel, Reason: ReasonEmpty}
	}

	cand.NonEmpty = nonEmpty
	cand.Score = nonEmpty
	if cand.DateColumn != "" {
		cand.Score += dateBonus
	}
	if cand.URLColumn != "" {
		cand.Score += urlBonus
	}
	return cand, nil
}

// countNonEmpty reads up to SampleLimit data rows and counts those whose
// text cell is not blank. Malformed records count toward the limit.
func (s *Selector) countNonEmpty(table *Table, textIdx int) (int, error) {
	count := 0
	for range s.rules.SampleLimit {
		row, err := table.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(row.Get(textIdx)) != "" {
			count++
		}
	}
	return count, nil
}

// relPath returns path relative to root with forward slashes.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
