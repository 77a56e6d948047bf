package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appDirName    = "jubiland"
	DefaultDBFile = "jubiland.db"
)

// GetDefaultDataDir returns a system-appropriate directory for the collection files.
func GetDefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appDirName)
	default: // Primarily Linux, but also other UNIX-like systems.
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName)
		}
		return filepath.Join(homeDir, ".local", "share", appDirName)
	}
}

// ExpandPath resolves a leading "~/" and makes path absolute.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", path, err)
	}
	return absPath, nil
}

// ResolveAndEnsureDataDir expands providedDir (or the default when empty) and
// creates it if missing.
func ResolveAndEnsureDataDir(providedDir string) (string, error) {
	targetDir := providedDir
	if targetDir == "" {
		targetDir = GetDefaultDataDir()
	}

	targetDir, err := ExpandPath(targetDir)
	if err != nil {
		return "", err
	}

	if err := ensureDir(targetDir); err != nil {
		return "", fmt.Errorf("failed to prepare data directory: %w", err)
	}
	return targetDir, nil
}

// ResolveAndEnsureDBPath returns the database file path, defaulting to
// DefaultDBFile inside dataDir, and creates its parent directory.
func ResolveAndEnsureDBPath(providedPath, dataDir string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = filepath.Join(dataDir, DefaultDBFile)
	}

	targetPath, err := ExpandPath(targetPath)
	if err != nil {
		return "", err
	}

	if err := ensureDir(filepath.Dir(targetPath)); err != nil {
		return "", fmt.Errorf("failed to prepare database directory: %w", err)
	}
	return targetPath, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat directory '%s': %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("'%s' exists and is not a directory", dir)
	}
	return nil
}
