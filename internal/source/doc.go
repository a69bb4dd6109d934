// Package source picks the file in a LinkedIn export that holds post content.
//
// An export is an opaque directory tree of tabular files. Most of them are
// private (messages, connections, learning history) or unrelated to posts.
// The Selector narrows them down in three passes:
//
//  1. Filename filters: a file is dropped if its name contains a Block
//     keyword, or if it contains none of the Allow keywords.
//  2. Header matching: the header row is compared case-insensitively against
//     the ordered TextColumns, DateColumns and URLColumns lists. The first
//     name in list order that appears in the header wins. No text column,
//     no candidate.
//  3. Sampling: up to SampleLimit data rows are read and rows with a
//     non-blank text cell are counted. Zero means no candidate.
//
// Survivors are scored as
//
//	score = non-empty rows + 10 (date column found) + 5 (URL column found)
//
// and the highest score wins. Ties go to the file enumerated first; the walk
// is lexical, so selection is deterministic for a given tree.
//
// All heuristics live in Rules, which callers may replace entirely or load
// from a YAML file with LoadRules:
//
//	rules, err := source.LoadRules("rules.yaml")
//	cand, err := source.NewSelector(rules, logger).Select(exportDir)
//
// When nothing survives, Select returns a *NoSourceError listing the tabular
// files it saw, so the user can tell an incomplete export from a renamed file.
package source
