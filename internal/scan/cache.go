package scan

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
)

// cacheMaxAge bounds how long a cached scan stays usable even when the
// root's signature is unchanged; detectors observe paths outside the
// root (browser caches, temp dirs) that the signature cannot see.
const cacheMaxAge = 10 * time.Minute

// cacheFile is the persisted shape of the scan-result cache: one entry
// per (root, options) pair.
type cacheFile struct {
	Entries map[string]cacheEntry `json:"entries"`
}

type cacheEntry struct {
	Signature string    `json:"signature"`
	ScannedAt time.Time `json:"scanned_at"`
	Results   *Results  `json:"results"`
}

// cacheKey identifies one scan configuration.
func cacheKey(root string, opts Options) string {
	key := root + "|"
	for _, on := range []bool{opts.Cache, opts.Temp, opts.Build, opts.Trash} {
		if on {
			key += "1"
		} else {
			key += "0"
		}
	}
	return key
}

// rootSignature derives a cheap change signature for root: its mtime.
// Anything that adds or removes a top-level entry bumps it; deeper
// changes are covered by cacheMaxAge.
func rootSignature(root string) string {
	info, err := os.Stat(root)
	if err != nil {
		return ""
	}
	return info.ModTime().UTC().Format(time.RFC3339Nano)
}

// LoadCached returns a previous scan of (root, opts) if its signature
// still matches and it is fresh enough. Any cache problem reads as a
// miss.
func LoadCached(root string, opts Options) (*Results, bool) {
	path, err := config.ScanCachePath()
	if err != nil {
		return nil, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var file cacheFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, false
	}

	entry, ok := file.Entries[cacheKey(root, opts)]
	if !ok || entry.Results == nil {
		return nil, false
	}
	if entry.Signature == "" || entry.Signature != rootSignature(root) {
		return nil, false
	}
	if time.Since(entry.ScannedAt) > cacheMaxAge {
		return nil, false
	}
	return entry.Results, true
}

// SaveCached records a completed scan for later reuse. Failures are
// silent; the cache is an optimization, never a dependency.
func SaveCached(root string, opts Options, results *Results) {
	path, err := config.ScanCachePath()
	if err != nil {
		return
	}

	file := cacheFile{Entries: make(map[string]cacheEntry)}
	if raw, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(raw, &file)
		if file.Entries == nil {
			file.Entries = make(map[string]cacheEntry)
		}
	}

	file.Entries[cacheKey(root, opts)] = cacheEntry{
		Signature: rootSignature(root),
		ScannedAt: time.Now(),
		Results:   results,
	}

	raw, err := json.Marshal(file)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, raw, 0o644)
}

// ClearCache removes the on-disk scan cache.
func ClearCache() error {
	path, err := config.ScanCachePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
