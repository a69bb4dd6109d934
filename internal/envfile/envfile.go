// Package envfile loads LINKEDIN_* and POSTSYNC_* variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads each path in order and sets variables not already in the
// environment, so earlier files win over later ones. A variable set to the
// empty string counts as unset.
// Missing files are skipped. Returns the files that were read.
func Load(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		ok, err := loadFile(path)
		if err != nil {
			return loaded, err
		}
		if ok {
			loaded = append(loaded, path)
		}
	}
	return loaded, nil
}

func loadFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars, err := godotenv.Parse(file)
	if err != nil {
		return false, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	for key, value := range vars {
		if os.Getenv(key) != "" {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return true, nil
}
