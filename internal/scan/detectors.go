// Package scan discovers reclaimable disk space by category and removes
// it, producing the deletion records the history log persists.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
)

// Category names the four kinds of reclaimable space.
type Category string

const (
	CategoryCache Category = "cache"
	CategoryTemp  Category = "temp"
	CategoryBuild Category = "build"
	CategoryTrash Category = "trash"
)

// Candidate is one path a detector proposes for removal.
type Candidate struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	IsDir     bool   `json:"is_dir"`
}

// CategoryResult aggregates one category's findings.
type CategoryResult struct {
	Items      int         `json:"items"`
	Bytes      int64       `json:"bytes"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

func (r *CategoryResult) add(c Candidate) {
	r.Items++
	r.Bytes += c.SizeBytes
	r.Candidates = append(r.Candidates, c)
}

// ─── Cache detector ──────────────────────────────────────────────────────────

// scanCache resolves the cache target catalog against the filesystem.
// Each existing target path (globs expanded) becomes one candidate.
func scanCache(settings config.Settings) (CategoryResult, error) {
	var result CategoryResult

	for _, target := range config.CacheTargets() {
		for _, p := range target.Paths {
			matches := []string{p}
			if strings.ContainsAny(p, "*?[") {
				globbed, err := filepath.Glob(p)
				if err != nil || len(globbed) == 0 {
					continue
				}
				matches = globbed
			}
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				size := info.Size()
				if info.IsDir() {
					size = dirSize(match)
				}
				if size < settings.MinSizeBytes {
					continue
				}
				result.add(Candidate{Path: match, SizeBytes: size, IsDir: info.IsDir()})
			}
		}
	}

	return result, nil
}

// ─── Temp detector ───────────────────────────────────────────────────────────

// junkPatterns are file globs recognized as junk inside temp locations.
var junkPatterns = []string{
	"*.tmp",
	"*.temp",
	"~$*",
	"Thumbs.db",
}

// scanTemp lists the immediate children of each temp directory. The
// directories themselves are never candidates: other processes hold
// them open.
func scanTemp(settings config.Settings) (CategoryResult, error) {
	var result CategoryResult

	// %TEMP% frequently aliases %LOCALAPPDATA%\Temp; visit each real
	// directory once.
	seen := make(map[string]bool)
	excluded := excludeSet(settings.Exclude)

	for _, target := range config.TempTargets() {
		for _, dir := range target.Paths {
			dir = filepath.Clean(dir)
			key := strings.ToLower(dir)
			if dir == "" || dir == "." || seen[key] {
				continue
			}
			seen[key] = true

			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, de := range entries {
				if excluded[strings.ToLower(de.Name())] {
					continue
				}
				path := filepath.Join(dir, de.Name())
				info, err := de.Info()
				if err != nil {
					continue
				}
				size := info.Size()
				if de.IsDir() {
					size = dirSize(path)
				}
				if size < settings.MinSizeBytes {
					continue
				}
				result.add(Candidate{Path: path, SizeBytes: size, IsDir: de.IsDir()})
			}
		}
	}

	return result, nil
}

// ─── Build detector ──────────────────────────────────────────────────────────

// maxProjectDepth bounds the project search; build trees below this are
// somebody's vendored dependencies, not projects.
const maxProjectDepth = 5

// scanBuild walks root for project directories (identified by marker
// files) and reports their regenerable artifact directories, skipping
// projects touched within the last ProjectAgeDays days.
func scanBuild(root string, settings config.Settings) (CategoryResult, error) {
	var result CategoryResult

	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		return result, fmt.Errorf("build scan root: %w", err)
	}

	minAge := time.Duration(settings.ProjectAgeDays) * 24 * time.Hour
	excluded := excludeSet(settings.Exclude)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking siblings
		}
		if !d.IsDir() {
			return nil
		}

		name := strings.ToLower(d.Name())
		if excluded[name] || isArtifactName(name) || strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if depthBelow(root, path) > maxProjectDepth {
			return filepath.SkipDir
		}

		if !isProjectDir(path) {
			return nil
		}

		for _, artifact := range config.ArtifactDirNames {
			ap := filepath.Join(path, artifact)
			info, err := os.Stat(ap)
			if err != nil || !info.IsDir() {
				continue
			}
			if minAge > 0 && time.Since(info.ModTime()) < minAge {
				continue // recently built, leave it alone
			}
			size := dirSize(ap)
			if size < settings.MinSizeBytes {
				continue
			}
			result.add(Candidate{Path: ap, SizeBytes: size, IsDir: true})
		}

		// Project found; don't descend into it looking for nested ones.
		return filepath.SkipDir
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// isProjectDir reports whether dir contains any project marker file.
func isProjectDir(dir string) bool {
	for _, marker := range config.ProjectMarkers {
		if strings.ContainsAny(marker, "*?[") {
			if matches, err := filepath.Glob(filepath.Join(dir, marker)); err == nil && len(matches) > 0 {
				return true
			}
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func isArtifactName(lower string) bool {
	for _, a := range config.ArtifactDirNames {
		if lower == strings.ToLower(a) {
			return true
		}
	}
	return false
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// ─── Trash detector ──────────────────────────────────────────────────────────

// scanTrash reports the current trash-store occupancy. Sizes come from
// the optional Sizer capability; stores without one report item counts
// only.
func scanTrash(bin trashbin.Bin) (CategoryResult, error) {
	var result CategoryResult

	entries, err := bin.List()
	if err != nil {
		return result, fmt.Errorf("enumerate trash store: %w", err)
	}
	result.Items = len(entries)

	if sizer, ok := bin.(trashbin.Sizer); ok {
		if total, err := sizer.TotalSize(); err == nil {
			result.Bytes = total
		}
	}
	return result, nil
}

// ─── Shared helpers ──────────────────────────────────────────────────────────

// dirSize sums file sizes under dir, tolerating unreadable subtrees.
func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

func excludeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}
