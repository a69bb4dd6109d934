package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/postsync/internal/config"
	"github.com/gorewood/postsync/internal/importer"
	"github.com/gorewood/postsync/internal/output"
)

// newImportCmd creates the import command.
func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import posts from a LinkedIn export",
		Long: `Import posts from a LinkedIn data export into Markdown files.

The export directory is scanned for CSV/TSV files. Files whose names suggest
private data are never used; among the rest, the file with the most post text
wins. Each non-empty row becomes one file named {date}-{slug}-{hash}.md.
Existing files are only rewritten when their content changed.

Afterwards the output directory is committed and pushed if anything in it
changed. Git failures are reported as warnings.

Examples:
  postsync import --export-dir ~/Downloads/Basic_LinkedInDataExport
  postsync import --out-dir content/linkedin --no-push
  LINKEDIN_EXPORT_DIR=./export postsync import --json`,
		RunE: runImport,
	}
	addSourceFlags(cmd)
	addOutputFlags(cmd)
	addPublishFlags(cmd)
	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	settings, err := resolveSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	report, err := importer.Sync(cmd.Context(), settings, importer.SyncOptions{Logger: newLogger(cmd)})
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}
	printImportSummary(printer, settings, report)
	return nil
}

// printImportSummary outputs the import result in human-readable format.
func printImportSummary(printer *output.Printer, settings config.Settings, report *importer.SyncReport) {
	printer.Section("Import")
	printer.KeyValue("Source", report.Source)
	printer.KeyValue("Text column", report.TextColumn)
	printer.KeyValue("Created", strconv.Itoa(report.Created))
	printer.KeyValue("Updated", strconv.Itoa(report.Updated))
	if report.Unchanged > 0 {
		printer.KeyValue("Unchanged", strconv.Itoa(report.Unchanged))
	}
	if report.Malformed > 0 {
		printer.KeyValue("Malformed", strconv.Itoa(report.Malformed))
	}
	printer.KeyValue("Output", report.OutDir)
	if report.Publish.Commit != "" {
		printer.KeyValue("Commit", shortSHA(report.Publish.Commit))
	}

	for _, warning := range report.Warnings {
		printer.Warn("%s", warning)
	}

	switch {
	case !settings.Commit:
		return
	case report.Publish.Pushed:
		printer.Println()
		_ = printer.Success("Committed and pushed: "+report.Publish.Message, nil)
	case report.Publish.Committed:
		printer.Println()
		_ = printer.Success("Committed: "+report.Publish.Message, nil)
	case len(report.Warnings) == 0:
		printer.Println()
		_ = printer.Success("Nothing to commit", nil)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
