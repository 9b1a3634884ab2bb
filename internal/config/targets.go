package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/lakshaymaurya-felt/winsweep/internal/envutil"
)

// Target is one named group of filesystem paths a category detector
// inspects. Paths may contain glob wildcards.
type Target struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths is the list of filesystem paths to inspect.
	Paths []string

	// Description is a human-readable description.
	Description string

	// Category is one of "cache", "temp", "build", "trash".
	Category string
}

// expand resolves environment variables in a path, supporting both
// Windows %VAR% and Unix $VAR / ${VAR} syntax.
func expand(path string) string {
	return envutil.ExpandWindowsEnv(path)
}

// userProfile returns the user's home directory.
func userProfile() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE")
	}
	home, _ := os.UserHomeDir()
	return home
}

// localAppData returns the local app data directory.
func localAppData() string {
	if l := os.Getenv("LOCALAPPDATA"); l != "" {
		return l
	}
	return filepath.Join(userProfile(), "AppData", "Local")
}

// appData returns the roaming app data directory.
func appData() string {
	if a := os.Getenv("APPDATA"); a != "" {
		return a
	}
	return filepath.Join(userProfile(), "AppData", "Roaming")
}

// winDir returns the Windows directory (e.g., C:\Windows).
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// programData returns the ProgramData directory.
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// CacheTargets returns the application and browser cache locations the
// cache detector inspects.
func CacheTargets() []Target {
	home := userProfile()
	local := localAppData()
	roaming := appData()

	return []Target{
		{
			Name: "ChromeCache",
			Paths: []string{
				filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Cache"),
				filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Code Cache"),
				filepath.Join(local, "Google", "Chrome", "User Data", "Default", "GPUCache"),
			},
			Description: "Google Chrome browser cache",
			Category:    "cache",
		},
		{
			Name: "EdgeCache",
			Paths: []string{
				filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Cache"),
				filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Code Cache"),
				filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "GPUCache"),
			},
			Description: "Microsoft Edge browser cache",
			Category:    "cache",
		},
		{
			Name: "FirefoxCache",
			Paths: []string{
				filepath.Join(local, "Mozilla", "Firefox", "Profiles", "*", "cache2"),
				filepath.Join(local, "Mozilla", "Firefox", "Profiles", "*", "startupCache"),
			},
			Description: "Mozilla Firefox browser cache",
			Category:    "cache",
		},
		{
			Name:        "NpmCache",
			Paths:       []string{filepath.Join(roaming, "npm-cache"), filepath.Join(home, ".npm", "_cacache")},
			Description: "npm package manager cache",
			Category:    "cache",
		},
		{
			Name:        "PipCache",
			Paths:       []string{filepath.Join(local, "pip", "Cache"), filepath.Join(home, ".cache", "pip")},
			Description: "Python pip package cache",
			Category:    "cache",
		},
		{
			Name:        "CargoCache",
			Paths:       []string{filepath.Join(home, ".cargo", "registry", "cache")},
			Description: "Rust cargo registry cache",
			Category:    "cache",
		},
		{
			Name:        "GoModCache",
			Paths:       []string{filepath.Join(home, "go", "pkg", "mod", "cache", "download")},
			Description: "Go module download cache",
			Category:    "cache",
		},
		{
			Name: "VSCodeCache",
			Paths: []string{
				filepath.Join(roaming, "Code", "Cache"),
				filepath.Join(roaming, "Code", "CachedData"),
			},
			Description: "Visual Studio Code cache",
			Category:    "cache",
		},
		{
			Name: "Thumbnails",
			Paths: []string{
				filepath.Join(local, "Microsoft", "Windows", "Explorer", "thumbcache_*.db"),
			},
			Description: "Windows Explorer thumbnail cache",
			Category:    "cache",
		},
	}
}

// TempTargets returns the temporary file locations the temp detector
// inspects.
func TempTargets() []Target {
	local := localAppData()

	targets := []Target{
		{
			Name:        "UserTemp",
			Paths:       []string{expand("$TEMP"), filepath.Join(local, "Temp")},
			Description: "User temporary files",
			Category:    "temp",
		},
	}

	if runtime.GOOS == "windows" {
		targets = append(targets, Target{
			Name:        "SystemTemp",
			Paths:       []string{filepath.Join(winDir(), "Temp")},
			Description: "System temporary files",
			Category:    "temp",
		})
	} else {
		targets = append(targets, Target{
			Name:        "SystemTemp",
			Paths:       []string{"/tmp", "/var/tmp"},
			Description: "System temporary files",
			Category:    "temp",
		})
	}

	return targets
}

// ArtifactDirNames are directory names the build detector recognizes as
// regenerable build output when found inside a project directory.
var ArtifactDirNames = []string{
	"node_modules",
	"target",
	"dist",
	"build",
	".next",
	".nuxt",
	"__pycache__",
	".gradle",
	"bin",
	"obj",
}

// ProjectMarkers are files whose presence marks a directory as a project
// root. Artifact directories are only reported inside project roots so a
// stray "build" directory in Documents is never touched.
var ProjectMarkers = []string{
	"package.json",
	"Cargo.toml",
	"go.mod",
	"pom.xml",
	"build.gradle",
	"pyproject.toml",
	"requirements.txt",
	"*.csproj",
	"*.sln",
	"CMakeLists.txt",
	"Makefile",
}

// NeverDeletePaths returns paths that must never be removed under any
// circumstances, resolved from the environment so non-C: installs are
// covered.
func NeverDeletePaths() []string {
	if runtime.GOOS != "windows" {
		return []string{"/", "/bin", "/boot", "/etc", "/home", "/usr", "/var"}
	}

	w := winDir()
	sd := systemDrive()
	return []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "EFI"),
		programFiles(),
		programData(),
		filepath.Join(sd, "Users"),
		filepath.Join(sd, "Recovery"),
	}
}
