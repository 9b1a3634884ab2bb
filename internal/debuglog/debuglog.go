// Package debuglog appends timestamped lines to per-topic log files in
// the application data directory. Logging is best-effort: failures never
// surface to callers, so it is safe to call from cleanup hot paths.
package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
)

func appendLine(fileName, message string) {
	data, err := config.DataDir()
	if err != nil {
		return
	}
	dir := filepath.Join(data, "debug")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] %s\n", ts, message)
}

// Cleaning records a line in cleaning.log.
func Cleaning(format string, args ...any) {
	appendLine("cleaning.log", fmt.Sprintf(format, args...))
}

// Restore records a line in restore.log.
func Restore(format string, args ...any) {
	appendLine("restore.log", fmt.Sprintf(format, args...))
}
