package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/postsync/internal/importer"
	"github.com/gorewood/postsync/internal/output"
	"github.com/gorewood/postsync/internal/source"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which export file an import would use",
		Long: `Scan a LinkedIn export and show how each CSV/TSV file was judged.

Candidates are listed best first with the columns that would be used for
text, date and URL and their score. Rejected files are listed with the reason.
Nothing is written. Exits with code 3 when no file qualifies.

Examples:
  postsync inspect --export-dir ./export
  postsync inspect --rules my-rules.yaml --json`,
		RunE: runInspect,
	}
	addSourceFlags(cmd)
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	settings, err := resolveSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	report, err := importer.Inspect(settings, newLogger(cmd))
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return err
		}
	} else {
		printInspectReport(printer, report)
	}

	if len(report.Candidates) == 0 {
		if !printer.IsJSON() {
			printer.Warn("no file qualifies as a post source; an import would fail")
		}
		return output.NewNoSourceError(&source.NoSourceError{Root: report.Root, Seen: report.Seen})
	}
	return nil
}

// printInspectReport outputs candidates and rejections as tables.
func printInspectReport(printer *output.Printer, report *source.Report) {
	printer.Section("Candidates")
	if len(report.Candidates) == 0 {
		printer.Println("(none)")
	} else {
		rows := make([][]string, 0, len(report.Candidates))
		for _, cand := range report.Candidates {
			rows = append(rows, []string{
				cand.Rel,
				cand.TextColumn,
				orDash(cand.DateColumn),
				orDash(cand.URLColumn),
				strconv.Itoa(cand.NonEmpty),
				strconv.Itoa(cand.Score),
			})
		}
		printer.Table([]string{"FILE", "TEXT", "DATE", "URL", "ROWS", "SCORE"}, rows)
	}

	if len(report.Rejected) > 0 {
		printer.Println()
		printer.Section("Rejected")
		rows := make([][]string, 0, len(report.Rejected))
		for _, rej := range report.Rejected {
			rows = append(rows, []string{rej.Rel, string(rej.Reason), orDash(rej.Detail)})
		}
		printer.Table([]string{"FILE", "REASON", "DETAIL"}, rows)
	}

	if len(report.Candidates) > 0 {
		printer.Println()
		printer.KeyValue("Selected", report.Candidates[0].Rel)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
