package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gorewood/postsync/internal/output"
)

// Setting keys, shared by flags, environment and postsync.yaml.
const (
	KeyExportDir = "export_dir"
	KeyOutDir    = "out_dir"
	KeyRules     = "rules"
	KeyRemote    = "remote"
	KeyNoCommit  = "no_commit"
	KeyNoPush    = "no_push"
)

// DefaultOutDir is where posts are written when nothing else is configured.
const DefaultOutDir = "posts"

// envBindings maps setting keys to the environment variables that feed them.
var envBindings = map[string]string{
	KeyExportDir: "LINKEDIN_EXPORT_DIR",
	KeyOutDir:    "LINKEDIN_OUT_DIR",
	KeyRules:     "POSTSYNC_RULES",
	KeyRemote:    "POSTSYNC_REMOTE",
}

// flagNames maps setting keys to their command-line flag names.
var flagNames = map[string]string{
	KeyExportDir: "export-dir",
	KeyOutDir:    "out-dir",
	KeyRules:     "rules",
	KeyRemote:    "remote",
	KeyNoCommit:  "no-commit",
	KeyNoPush:    "no-push",
}

// Settings is the resolved configuration for one postsync run.
type Settings struct {
	ExportDir string `json:"export_dir"`
	OutDir    string `json:"out_dir"`
	RulesFile string `json:"rules,omitempty"`
	Remote    string `json:"remote,omitempty"`
	Commit    bool   `json:"commit"`
	Push      bool   `json:"push"`
}

// NewViper returns a viper instance with postsync's defaults, environment
// bindings and config file search paths (working directory, then Dir()).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOutDir, DefaultOutDir)
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	v.SetConfigName("postsync")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	return v
}

// BindFlags binds every known setting to its flag in flags, when present.
// Unchanged flags fall through to environment, config file and defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagNames {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// ReadConfigFile loads postsync.yaml when one exists on the search path.
// Returns the file used, or "" when there is none.
func ReadConfigFile(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", output.NewUserErrorWithCause("invalid config file: "+err.Error(), err)
	}
	return v.ConfigFileUsed(), nil
}

// Load snapshots the settings held by v.
func Load(v *viper.Viper) Settings {
	outDir := v.GetString(KeyOutDir)
	if outDir == "" {
		outDir = DefaultOutDir
	}
	return Settings{
		ExportDir: v.GetString(KeyExportDir),
		OutDir:    outDir,
		RulesFile: v.GetString(KeyRules),
		Remote:    v.GetString(KeyRemote),
		Commit:    !v.GetBool(KeyNoCommit),
		Push:      !v.GetBool(KeyNoPush),
	}
}

// Validate checks that the export directory is set and exists.
func (s Settings) Validate() error {
	if s.ExportDir == "" {
		return output.NewUserError("LINKEDIN_EXPORT_DIR is not set (use --export-dir or the environment)")
	}
	info, err := os.Stat(s.ExportDir)
	if err != nil {
		return output.NewUserErrorWithCause("export directory is invalid: "+s.ExportDir, err)
	}
	if !info.IsDir() {
		return output.NewUserError("export directory is not a directory: " + s.ExportDir)
	}
	return nil
}
