package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
	"github.com/lakshaymaurya-felt/winsweep/internal/debuglog"
	"github.com/lakshaymaurya-felt/winsweep/internal/history"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
)

// Options selects which categories a scan covers.
type Options struct {
	Cache bool
	Temp  bool
	Build bool
	Trash bool
}

// All returns Options with every category enabled.
func All() Options {
	return Options{Cache: true, Temp: true, Build: true, Trash: true}
}

// Any reports whether at least one category is enabled.
func (o Options) Any() bool {
	return o.Cache || o.Temp || o.Build || o.Trash
}

// Results aggregates the per-category findings of one scan. A failed
// detector leaves its category empty and surfaces a warning; it never
// fails the scan.
type Results struct {
	Cache    CategoryResult `json:"cache"`
	Temp     CategoryResult `json:"temp"`
	Build    CategoryResult `json:"build"`
	Trash    CategoryResult `json:"trash"`
	Warnings []string       `json:"warnings,omitempty"`
}

// TotalItems sums item counts across categories.
func (r *Results) TotalItems() int {
	return r.Cache.Items + r.Temp.Items + r.Build.Items + r.Trash.Items
}

// TotalBytes sums byte counts across categories.
func (r *Results) TotalBytes() int64 {
	return r.Cache.Bytes + r.Temp.Bytes + r.Build.Bytes + r.Trash.Bytes
}

// ErrNotAuthorized is returned by Clean when the caller has not
// explicitly authorized the batch.
var ErrNotAuthorized = errors.New("clean not authorized by caller")

// Orchestrator runs category detectors and replays their findings as
// deletions.
type Orchestrator struct {
	Bin      trashbin.Bin
	Settings config.Settings

	// Quiet suppresses per-path console output.
	Quiet bool
}

// New creates an orchestrator over the given trash store.
func New(bin trashbin.Bin, settings config.Settings) *Orchestrator {
	return &Orchestrator{Bin: bin, Settings: settings}
}

// Scan runs every enabled category detector over root. Detector
// failures degrade to warnings; only the enabled categories contribute.
func (o *Orchestrator) Scan(root string, opts Options) *Results {
	results := &Results{}

	if opts.Cache {
		if res, err := scanCache(o.Settings); err != nil {
			results.Warnings = append(results.Warnings, fmt.Sprintf("cache scan failed: %v", err))
		} else {
			results.Cache = res
		}
	}
	if opts.Temp {
		if res, err := scanTemp(o.Settings); err != nil {
			results.Warnings = append(results.Warnings, fmt.Sprintf("temp scan failed: %v", err))
		} else {
			results.Temp = res
		}
	}
	if opts.Trash {
		if res, err := scanTrash(o.Bin); err != nil {
			results.Warnings = append(results.Warnings, fmt.Sprintf("trash scan failed: %v", err))
		} else {
			results.Trash = res
		}
	}
	if opts.Build {
		if res, err := scanBuild(root, o.Settings); err != nil {
			results.Warnings = append(results.Warnings, fmt.Sprintf("build scan failed: %v", err))
		} else {
			results.Build = res
		}
	}

	return results
}

// CleanOptions control how Clean disposes of candidates.
type CleanOptions struct {
	// Authorized must be set by the caller after its confirmation gate;
	// without it Clean removes nothing.
	Authorized bool

	// Permanent bypasses the trash store. Such deletions cannot be
	// restored and are recorded as permanent.
	Permanent bool

	// EmptyTrash additionally empties the trash store when the trash
	// category reported items.
	EmptyTrash bool
}

// Summary reports the outcome of one Clean invocation.
type Summary struct {
	Cleaned int
	Errors  int
	Bytes   int64
}

// Clean removes every candidate from results, one path at a time; a
// failure on one path is counted and the batch continues. Every attempt
// is appended to the returned session log, which the caller persists.
func (o *Orchestrator) Clean(results *Results, opts CleanOptions) (Summary, *history.Log, error) {
	if !opts.Authorized {
		return Summary{}, nil, ErrNotAuthorized
	}

	log := history.NewLog()
	var summary Summary

	protected := config.NeverDeletePaths()

	categories := []struct {
		name   Category
		result CategoryResult
	}{
		{CategoryCache, results.Cache},
		{CategoryTemp, results.Temp},
		{CategoryBuild, results.Build},
	}

	for _, cat := range categories {
		if cat.result.Items == 0 {
			continue
		}
		o.sayf("Cleaning %s...", cat.name)

		for _, cand := range cat.result.Candidates {
			if isProtected(cand.Path, protected) {
				summary.Errors++
				o.warnf("Refusing to delete protected path: %s", cand.Path)
				continue
			}

			record := history.Record{
				Path:      cand.Path,
				Permanent: opts.Permanent,
				SizeBytes: cand.SizeBytes,
			}

			err := o.remove(cand.Path, opts.Permanent)
			if err != nil {
				summary.Errors++
				o.warnf("Failed to clean %s: %v", cand.Path, err)
			} else {
				record.Success = true
				summary.Cleaned++
				summary.Bytes += cand.SizeBytes
			}
			log.Append(record)
			debuglog.Cleaning("%s %s success=%t permanent=%t size=%d",
				cat.name, cand.Path, record.Success, record.Permanent, record.SizeBytes)
		}
	}

	// The trash category has no per-path candidates; emptying the store
	// is a single irreversible operation and produces no restorable
	// records.
	if opts.EmptyTrash && results.Trash.Items > 0 {
		o.sayf("Emptying trash store...")
		if err := o.emptyTrash(); err != nil {
			summary.Errors++
			o.warnf("Failed to empty trash store: %v", err)
		} else {
			summary.Cleaned += results.Trash.Items
			summary.Bytes += results.Trash.Bytes
		}
	}

	return summary, log, nil
}

// remove disposes of one path: through the trash store by default, or
// permanently when requested.
func (o *Orchestrator) remove(path string, permanent bool) error {
	if permanent {
		return os.RemoveAll(path)
	}
	return o.Bin.Put(path)
}

// emptyTrash empties the trash store. Bins with a native empty
// operation (the Windows shell) use it; otherwise entries are removed
// one by one.
func (o *Orchestrator) emptyTrash() error {
	type emptier interface{ Empty() error }
	if e, ok := o.Bin.(emptier); ok {
		return e.Empty()
	}

	entries, err := o.Bin.List()
	if err != nil {
		return err
	}
	type remover interface{ Purge(trashbin.Entry) error }
	r, ok := o.Bin.(remover)
	if !ok {
		return fmt.Errorf("trash store does not support emptying")
	}
	for _, en := range entries {
		if err := r.Purge(en); err != nil {
			return err
		}
	}
	return nil
}

// isProtected reports whether path is, or is a parent of, a
// never-delete path. Comparison is case-insensitive to match Windows
// filesystems.
func isProtected(path string, protected []string) bool {
	cleaned := strings.ToLower(filepath.Clean(path))
	for _, p := range protected {
		pc := strings.ToLower(filepath.Clean(p))
		if cleaned == pc {
			return true
		}
		// A candidate that contains a protected path would take the
		// protected tree with it.
		if strings.HasPrefix(pc, cleaned+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) sayf(format string, args ...any) {
	if o.Quiet {
		return
	}
	fmt.Printf(format+"\n", args...)
}

func (o *Orchestrator) warnf(format string, args ...any) {
	if o.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
