// Package main provides the entry point for the postsync CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/postsync/internal/config"
	"github.com/gorewood/postsync/internal/envfile"
	"github.com/gorewood/postsync/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves --color against the command's output writer.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns the printer every command reports through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// newLogger returns the diagnostic logger: warnings only, debug with --verbose.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "postsync"})
	logger.SetLevel(log.WarnLevel)
	if persistentFlag(cmd, "verbose") == "true" {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}
	return logger
}

func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the postsync CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postsync",
		Short: "Turn a LinkedIn data export into Markdown posts",
		Long: `postsync - Import the posts from a LinkedIn data export into Markdown files.

postsync finds the file in the export that holds your post text, writes one
Markdown file with front matter per post and commits the result with git:
  - Private data (messages, connections, contacts, ...) is never selected
  - File names are stable, so re-running only touches what changed
  - The output directory is committed and pushed when anything changed

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'postsync --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadEnvFiles()
		if err != nil {
			return output.NewUserErrorWithCause(err.Error(), err)
		}
		if len(loaded) > 0 {
			newLogger(cmd).Debug("loaded env files", "files", loaded)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-directory override, gitignored)
//  2. $CWD/.env
//  3. <config dir>/env  (global fallback)
func loadEnvFiles() ([]string, error) {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	return envfile.Load(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newImportCmd(), "core")

	addGroupedCommand(cmd, newInspectCmd(), "query")
	addGroupedCommand(cmd, newListCmd(), "query")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
