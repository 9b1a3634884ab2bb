//go:build !windows

package core

import (
	"fmt"
	"runtime"
)

// OSVersionString returns a best-effort OS description for non-Windows hosts.
func OSVersionString() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
