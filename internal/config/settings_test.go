package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// redirectDataDir points the data directory at a fresh temp location so
// tests never touch the real user profile.
func redirectDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("LOCALAPPDATA", dir)
	return dir
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.Equal(t, 7, s.ProjectAgeDays)
	require.Zero(t, s.MinSizeBytes)
	require.Empty(t, s.Exclude)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	redirectDataDir(t)
	t.Setenv("WINSWEEP_PROJECT_AGE_DAYS", "30")
	t.Setenv("WINSWEEP_MIN_SIZE_BYTES", "4096")
	t.Setenv("WINSWEEP_EXCLUDE", "node_modules, .git ,")

	s := LoadSettings()
	require.Equal(t, 30, s.ProjectAgeDays)
	require.Equal(t, int64(4096), s.MinSizeBytes)
	require.Equal(t, []string{"node_modules", ".git"}, s.Exclude)
}

func TestLoadSettingsIgnoresInvalidValues(t *testing.T) {
	redirectDataDir(t)
	t.Setenv("WINSWEEP_PROJECT_AGE_DAYS", "not-a-number")
	t.Setenv("WINSWEEP_MIN_SIZE_BYTES", "-1")

	s := LoadSettings()
	require.Equal(t, DefaultSettings().ProjectAgeDays, s.ProjectAgeDays)
	require.Zero(t, s.MinSizeBytes)
}

func TestLoadSettingsFromEnvFile(t *testing.T) {
	redirectDataDir(t)
	// godotenv only fills variables that are absent, so make sure this
	// one is truly unset (t.Setenv registers the restore).
	t.Setenv("WINSWEEP_PROJECT_AGE_DAYS", "")
	os.Unsetenv("WINSWEEP_PROJECT_AGE_DAYS")

	envFile, err := EnvFilePath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(envFile, []byte("WINSWEEP_PROJECT_AGE_DAYS=14\n"), 0o644))

	s := LoadSettings()
	require.Equal(t, 14, s.ProjectAgeDays)
}

func TestDataDirLayout(t *testing.T) {
	base := redirectDataDir(t)

	data, err := DataDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, appDirName), data)
	require.DirExists(t, data)

	logs, err := LogsDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(data, "logs"), logs)
	require.DirExists(t, logs)

	trash, err := TrashDir()
	require.NoError(t, err)
	require.DirExists(t, trash)

	cache, err := ScanCachePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(data, "scan-cache.json"), cache)
}

func TestTargetCatalogs(t *testing.T) {
	for _, target := range CacheTargets() {
		require.NotEmpty(t, target.Name)
		require.NotEmpty(t, target.Paths, "target %s", target.Name)
		require.Equal(t, "cache", target.Category, "target %s", target.Name)
	}
	require.NotEmpty(t, TempTargets())
	require.NotEmpty(t, ArtifactDirNames)
	require.Contains(t, ArtifactDirNames, "node_modules")
	require.NotEmpty(t, ProjectMarkers)
	require.NotEmpty(t, NeverDeletePaths())
}
