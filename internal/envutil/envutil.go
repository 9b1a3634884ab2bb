// Package envutil expands environment variable references in paths,
// accepting both Windows %VAR% and Unix $VAR / ${VAR} syntax.
package envutil

import (
	"os"
	"strings"
)

// ExpandWindowsEnv resolves %VAR%, $VAR and ${VAR} references in path.
// Unknown variables expand to the empty string, matching os.ExpandEnv.
func ExpandWindowsEnv(path string) string {
	expanded := expandPercent(path)
	return os.ExpandEnv(expanded)
}

// expandPercent rewrites %VAR% segments using the process environment.
// A lone '%' with no closing partner is left as-is.
func expandPercent(path string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(path, '%')
		if start < 0 {
			b.WriteString(path)
			return b.String()
		}
		end := strings.IndexByte(path[start+1:], '%')
		if end < 0 {
			b.WriteString(path)
			return b.String()
		}
		end += start + 1

		b.WriteString(path[:start])
		name := path[start+1 : end]
		if name == "" {
			// "%%" is a literal percent.
			b.WriteByte('%')
		} else {
			b.WriteString(os.Getenv(name))
		}
		path = path[end+1:]
	}
}
