package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the user-tunable knobs. Defaults match the shipped
// behavior; a config.env file in the data directory and process
// environment variables (WINSWEEP_*) override them in that order.
type Settings struct {
	// ProjectAgeDays is the minimum age of a project before its build
	// artifacts are considered stale.
	ProjectAgeDays int

	// MinSizeBytes filters scan results below this size.
	MinSizeBytes int64

	// Exclude lists directory names the detectors skip.
	Exclude []string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		ProjectAgeDays: 7,
		MinSizeBytes:   0,
	}
}

// LoadSettings builds Settings from defaults, the optional config.env
// file, and the process environment. A missing config.env is not an
// error.
func LoadSettings() Settings {
	s := DefaultSettings()

	if envFile, err := EnvFilePath(); err == nil {
		// godotenv.Load ignores nothing; probe first so a missing file
		// stays silent.
		if _, statErr := os.Stat(envFile); statErr == nil {
			_ = godotenv.Load(envFile)
		}
	}

	if v := os.Getenv("WINSWEEP_PROJECT_AGE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.ProjectAgeDays = n
		}
	}
	if v := os.Getenv("WINSWEEP_MIN_SIZE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			s.MinSizeBytes = n
		}
	}
	if v := os.Getenv("WINSWEEP_EXCLUDE"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				s.Exclude = append(s.Exclude, part)
			}
		}
	}

	return s
}
