package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// locateDownloads determines the default directory to scan.
// XDG_DOWNLOAD_DIR takes precedence (values like "$HOME/Downloads" are expanded),
// otherwise ~/Downloads is used.
func locateDownloads() (string, error) {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		expanded, err := homedir.Expand(os.ExpandEnv(dir))
		if err != nil {
			return "", fmt.Errorf(`cannot expand XDG_DOWNLOAD_DIR '%s': %w`, dir, err)
		}
		return filepath.Clean(expanded), nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(`cannot determine home directory: %w`, err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// homeDirectory returns the home directory for "~/" abbreviation, or "" if unknown
func homeDirectory() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return home
}
