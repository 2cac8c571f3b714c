package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// JournalEnv overrides the default journal location.
const JournalEnv = "KTL_JOURNAL"

var ErrJournalNotFound = errors.New("journal file not found")

// GetDefaultJournalPath returns the journal path used when none is given:
// $KTL_JOURNAL if set, otherwise a system-appropriate data directory.
func GetDefaultJournalPath() string {
	if p := os.Getenv(JournalEnv); p != "" {
		return p
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "journal.yaml"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "ktl", "journal.yaml")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "ktl", "journal.yaml")
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "ktl", "journal.yaml")
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/")), nil
}

// ResolveJournalPath picks the first non-empty candidate (falling back to
// GetDefaultJournalPath), expands it and checks that it is a readable file.
func ResolveJournalPath(candidates ...string) (string, error) {
	targetPath := ""
	for _, c := range candidates {
		if c != "" {
			targetPath = c
			break
		}
	}
	if targetPath == "" {
		targetPath = GetDefaultJournalPath()
	}

	targetPath, err := ExpandHome(targetPath)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrJournalNotFound, absPath)
	} else if err != nil {
		return "", fmt.Errorf("failed to stat journal '%s': %w", absPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("journal path '%s' is a directory", absPath)
	}

	return absPath, nil
}
