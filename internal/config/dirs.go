package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory name used under the platform data root.
const appDirName = "winsweep"

// DataDir returns the per-user application data directory
// (%LOCALAPPDATA%\winsweep on Windows, ~/.local/share/winsweep elsewhere).
// The directory is created on first use.
func DataDir() (string, error) {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	} else {
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// LogsDir returns the deletion-history directory, creating it if needed.
func LogsDir() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(data, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// TrashDir returns the directory backing the portable trash bin.
func TrashDir() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(data, "trash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ScanCachePath returns the location of the on-disk scan-result cache.
func ScanCachePath() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "scan-cache.json"), nil
}

// EnvFilePath returns the optional config.env override file location.
func EnvFilePath() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "config.env"), nil
}
