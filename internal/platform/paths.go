package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	AppName         = "Cursor"
	StorageFileName = "storage.json"
	BackupDirName   = "backups"
)

var ErrNoDirectory = errors.New("cannot determine directory")

type Paths struct {
	// UserDir is <config dir>/Cursor/User.
	UserDir     string
	StorageFile string
	BackupDir   string
}

// GlobalStorageDir is the directory holding storage.json and backups.
func (p Paths) GlobalStorageDir() string {
	return filepath.Join(p.UserDir, "globalStorage")
}

// DefaultPaths resolves the per-user locations of the host application.
func DefaultPaths() (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("%w: user config directory: %w", ErrNoDirectory, err)
	}
	return PathsUnder(configDir), nil
}

func PathsUnder(configDir string) Paths {
	userDir := filepath.Join(configDir, AppName, "User")
	global := filepath.Join(userDir, "globalStorage")
	return Paths{
		UserDir:     userDir,
		StorageFile: filepath.Join(global, StorageFileName),
		BackupDir:   filepath.Join(global, BackupDirName),
	}
}

// DataDir is the per-user, non-roaming application data directory.
func DataDir() (string, error) {
	return dataDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func dataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("%w: %%LOCALAPPDATA%% is not defined", ErrNoDirectory)
	case "darwin":
		dir, err := home()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoDirectory, err)
		}
		return filepath.Join(dir, "Library", "Application Support"), nil
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		dir, err := home()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoDirectory, err)
		}
		return filepath.Join(dir, ".local", "share"), nil
	}
}

// PackageJSONCandidates lists where the installed application keeps its
// package.json, most likely first.
func PackageJSONCandidates(dataDir string) []string {
	return []string{
		filepath.Join(dataDir, "Programs", "cursor", "resources", "app", "package.json"),
		filepath.Join(dataDir, "cursor", "resources", "app", "package.json"),
	}
}
