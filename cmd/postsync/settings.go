package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/postsync/internal/config"
)

// addSourceFlags registers the flags that locate the export and its rules.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("export-dir", "", "LinkedIn export directory (env LINKEDIN_EXPORT_DIR)")
	cmd.Flags().String("rules", "", "YAML file overriding the selection rules (env POSTSYNC_RULES)")
}

// addOutputFlags registers the output directory flag.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("out-dir", config.DefaultOutDir, "Directory for post files (env LINKEDIN_OUT_DIR)")
}

// addPublishFlags registers the git flags.
func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().String("remote", "", "Remote to push to; empty uses the branch upstream (env POSTSYNC_REMOTE)")
	cmd.Flags().Bool("no-commit", false, "Write files but do not commit or push")
	cmd.Flags().Bool("no-push", false, "Commit but do not push")
}

// resolveSettings merges flags, environment, postsync.yaml and defaults.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Settings{}, err
	}
	file, err := config.ReadConfigFile(v)
	if err != nil {
		return config.Settings{}, err
	}
	settings := config.Load(v)
	newLogger(cmd).Debug("resolved settings", "config_file", file, "export_dir", settings.ExportDir,
		"out_dir", settings.OutDir, "rules", settings.RulesFile, "commit", settings.Commit, "push", settings.Push)
	return settings, nil
}
