package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/postsync/internal/importer"
	"github.com/gorewood/postsync/internal/output"
	"github.com/gorewood/postsync/internal/store"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List imported posts",
		Long: `List the posts in the output directory, newest first.

Each file's front matter is read back, so hand-edited files show their
current date and source.

Examples:
  postsync list
  postsync list --out-dir content/linkedin --limit 10
  postsync list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, limit)
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N posts (0 for all)")
	return cmd
}

func runList(cmd *cobra.Command, _ []string, limit int) error {
	printer := newPrinter(cmd)

	settings, err := resolveSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	listing, err := importer.ListPosts(store.NewDir(settings.OutDir), newLogger(cmd))
	if err != nil {
		err = output.NewSystemErrorWithCause("cannot list posts: "+err.Error(), err)
		printer.Error(err)
		return err
	}

	total := len(listing.Posts)
	if limit > 0 && limit < total {
		listing.Posts = listing.Posts[:limit]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"out_dir": settings.OutDir,
			"count":   total,
			"posts":   listing.Posts,
			"skipped": listing.Skipped,
		})
	}

	if total == 0 {
		printer.Println("No posts in " + settings.OutDir)
		return nil
	}

	rows := make([][]string, 0, len(listing.Posts))
	for _, doc := range listing.Posts {
		rows = append(rows, []string{doc.Meta.Date, doc.Name, doc.Title()})
	}
	printer.Table([]string{"DATE", "FILE", "TITLE"}, rows)
	printer.Println()
	printer.KeyValue("Posts", strconv.Itoa(total))
	if len(listing.Skipped) > 0 {
		printer.KeyValue("Skipped", strconv.Itoa(len(listing.Skipped)))
	}
	return nil
}
