package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/postsync/internal/config"
	"github.com/gorewood/postsync/internal/importer"
	"github.com/gorewood/postsync/internal/output"
	"github.com/gorewood/postsync/internal/store"
)

// --- Inspect tool ---

// InspectInput is the input for the inspect_export tool.
type InspectInput struct {
	ExportDir string `json:"export_dir,omitempty" jsonschema:"export directory (defaults to LINKEDIN_EXPORT_DIR)"`
	Rules     string `json:"rules,omitempty"      jsonschema:"path to a YAML rules file overriding the built-in heuristics"`
}

// CandidateSummary describes one file that could serve as the post source.
type CandidateSummary struct {
	File       string `json:"file"                  jsonschema:"path relative to the export directory"`
	TextColumn string `json:"text_column"           jsonschema:"column holding the post text"`
	DateColumn string `json:"date_column,omitempty" jsonschema:"column holding the post date"`
	URLColumn  string `json:"url_column,omitempty"  jsonschema:"column holding the post URL"`
	Rows       int    `json:"rows"                  jsonschema:"non-empty text rows in the sample"`
	Score      int    `json:"score"                 jsonschema:"selection score, highest wins"`
}

// RejectedFile is a tabular file that was not considered a post source.
type RejectedFile struct {
	File   string `json:"file"             jsonschema:"path relative to the export directory"`
	Reason string `json:"reason"           jsonschema:"why the file was rejected"`
	Detail string `json:"detail,omitempty" jsonschema:"extra information such as the matching keyword"`
}

// InspectOutput is the output for the inspect_export tool.
type InspectOutput struct {
	ExportDir  string             `json:"export_dir"         jsonschema:"directory that was scanned"`
	Selected   string             `json:"selected,omitempty" jsonschema:"file an import would use"`
	Candidates []CandidateSummary `json:"candidates"         jsonschema:"candidate files, best first"`
	Rejected   []RejectedFile     `json:"rejected"           jsonschema:"files that were skipped"`
}

func handleInspect(deps Deps) mcp.ToolHandlerFor[InspectInput, InspectOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InspectInput) (*mcp.CallToolResult, InspectOutput, error) {
		settings := deps.Defaults
		override(&settings.ExportDir, input.ExportDir)
		override(&settings.RulesFile, input.Rules)

		report, err := importer.Inspect(settings, deps.Logger)
		if err != nil {
			return nil, InspectOutput{}, toolError(err)
		}

		out := InspectOutput{
			ExportDir:  settings.ExportDir,
			Candidates: make([]CandidateSummary, 0, len(report.Candidates)),
			Rejected:   make([]RejectedFile, 0, len(report.Rejected)),
		}
		for _, cand := range report.Candidates {
			out.Candidates = append(out.Candidates, CandidateSummary{
				File:       cand.Rel,
				TextColumn: cand.TextColumn,
				DateColumn: cand.DateColumn,
				URLColumn:  cand.URLColumn,
				Rows:       cand.NonEmpty,
				Score:      cand.Score,
			})
		}
		if len(out.Candidates) > 0 {
			out.Selected = out.Candidates[0].File
		}
		for _, rej := range report.Rejected {
			out.Rejected = append(out.Rejected, RejectedFile{File: rej.Rel, Reason: string(rej.Reason), Detail: rej.Detail})
		}
		return nil, out, nil
	}
}

// --- Import tool ---

// ImportInput is the input for the import_posts tool.
type ImportInput struct {
	ExportDir string `json:"export_dir,omitempty" jsonschema:"export directory (defaults to LINKEDIN_EXPORT_DIR)"`
	OutDir    string `json:"out_dir,omitempty"    jsonschema:"output directory (defaults to LINKEDIN_OUT_DIR or posts)"`
	Rules     string `json:"rules,omitempty"      jsonschema:"path to a YAML rules file overriding the built-in heuristics"`
	NoCommit  bool   `json:"no_commit,omitempty"  jsonschema:"write files but skip the git commit"`
	NoPush    bool   `json:"no_push,omitempty"    jsonschema:"commit but do not push"`
}

// ImportOutput is the output for the import_posts tool.
type ImportOutput struct {
	Source     string   `json:"source"             jsonschema:"selected source file"`
	TextColumn string   `json:"text_column"        jsonschema:"column used for post text"`
	Created    int      `json:"created"            jsonschema:"new post files"`
	Updated    int      `json:"updated"            jsonschema:"post files whose content changed"`
	Unchanged  int      `json:"unchanged"          jsonschema:"post files already up to date"`
	Committed  bool     `json:"committed"          jsonschema:"whether a commit was made"`
	Commit     string   `json:"commit,omitempty"   jsonschema:"SHA of the new commit"`
	Pushed     bool     `json:"pushed"             jsonschema:"whether the commit was pushed"`
	Warnings   []string `json:"warnings,omitempty" jsonschema:"non-fatal problems such as a failed push"`
}

func handleImport(deps Deps) mcp.ToolHandlerFor[ImportInput, ImportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ImportInput) (*mcp.CallToolResult, ImportOutput, error) {
		settings := deps.Defaults
		override(&settings.ExportDir, input.ExportDir)
		override(&settings.OutDir, input.OutDir)
		override(&settings.RulesFile, input.Rules)
		if input.NoCommit {
			settings.Commit = false
		}
		if input.NoPush {
			settings.Push = false
		}

		report, err := importer.Sync(ctx, settings, importer.SyncOptions{Logger: deps.Logger, Now: deps.Now})
		if err != nil {
			return nil, ImportOutput{}, toolError(err)
		}

		return nil, ImportOutput{
			Source:     report.Source,
			TextColumn: report.TextColumn,
			Created:    report.Created,
			Updated:    report.Updated,
			Unchanged:  report.Unchanged,
			Committed:  report.Publish.Committed,
			Commit:     report.Publish.Commit,
			Pushed:     report.Publish.Pushed,
			Warnings:   report.Warnings,
		}, nil
	}
}

// --- List tool ---

// ListInput is the input for the list_posts tool.
type ListInput struct {
	OutDir string `json:"out_dir,omitempty" jsonschema:"output directory (defaults to LINKEDIN_OUT_DIR or posts)"`
	Limit  int    `json:"limit,omitempty"   jsonschema:"maximum number of posts to return (0 for all)"`
}

// PostSummary is one imported post.
type PostSummary struct {
	File   string `json:"file"             jsonschema:"file name in the output directory"`
	Date   string `json:"date"             jsonschema:"post date (YYYY-MM-DD)"`
	Source string `json:"source,omitempty" jsonschema:"original post URL"`
	Title  string `json:"title"            jsonschema:"first line of the post"`
}

// ListOutput is the output for the list_posts tool.
type ListOutput struct {
	Count int           `json:"count" jsonschema:"number of posts in the directory"`
	Posts []PostSummary `json:"posts" jsonschema:"posts, newest first"`
}

func handleList(deps Deps) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
		outDir := deps.Defaults.OutDir
		override(&outDir, input.OutDir)
		if outDir == "" {
			outDir = config.DefaultOutDir
		}

		listing, err := importer.ListPosts(store.NewDir(outDir), deps.Logger)
		if err != nil {
			return nil, ListOutput{}, err
		}

		out := ListOutput{Count: len(listing.Posts), Posts: make([]PostSummary, 0, len(listing.Posts))}
		for idx, doc := range listing.Posts {
			if input.Limit > 0 && idx >= input.Limit {
				break
			}
			out.Posts = append(out.Posts, PostSummary{
				File:   doc.Name,
				Date:   doc.Meta.Date,
				Source: doc.Meta.Source,
				Title:  doc.Title(),
			})
		}
		return nil, out, nil
	}
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// toolError drops the exit-code wrapper; MCP clients only see the message.
func toolError(err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return errors.New(exitErr.Message)
	}
	return err
}
