//go:build windows

package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// windowsVersion returns the major, minor, and build numbers of the running
// Windows. RtlGetNtVersionNumbers works on all versions without a manifest.
func windowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// The build number comes back with high bits set; mask them off.
	build &= 0xFFFF
	return major, minor, build
}

// OSVersionString returns a human-readable OS version like
// "Windows 11 (Build 22621)".
func OSVersionString() string {
	major, minor, build := windowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}
