// Package restore reconciles deletion history against the live trash
// store and replays restorations. The engine is single-threaded and
// synchronous; callers needing responsiveness run it on a worker and
// observe progress through the callback contract.
package restore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/debuglog"
	"github.com/lakshaymaurya-felt/winsweep/internal/history"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

// ErrNothingToRestore is returned by RestoreLast when no deletion
// history exists.
var ErrNothingToRestore = errors.New("no deletion history found, nothing to restore")

// Progress observes the reconciliation. It is invoked once before each
// restorable record with the path about to be attempted and the running
// totals, and once more at the end with an empty path and the final
// totals. A non-nil return aborts the remaining batch; already-restored
// items stay restored.
type Progress func(path string, restored, total, errs, notFound int) error

// Result summarizes one restore invocation. A directory restored with
// at least one surviving child counts as exactly one in Restored.
type Result struct {
	Restored      int
	RestoredBytes int64
	Errors        int
	NotFound      int
}

// Summary renders the result for the CLI.
func (r Result) Summary() string {
	return fmt.Sprintf("Restored %d items (%s), %d errors, %d not found",
		r.Restored, core.FormatSize(r.RestoredBytes), r.Errors, r.NotFound)
}

// Engine matches historical deletion records to live trash entries.
type Engine struct {
	bin  trashbin.Bin
	logs *history.Store

	// Quiet suppresses per-record console output; totals still
	// accumulate in the Result.
	Quiet bool

	// foldCase selects case-insensitive, separator-normalized path
	// comparison. Decided once per engine from the platform.
	foldCase bool
}

// New creates an engine over the given trash store and history store.
func New(bin trashbin.Bin, logs *history.Store) *Engine {
	return &Engine{
		bin:      bin,
		logs:     logs,
		foldCase: runtime.GOOS == "windows",
	}
}

// normalize prepares a path for comparison. On case-insensitive
// platforms separators collapse to '/' and case folds to lower;
// elsewhere it is the identity transform.
func (e *Engine) normalize(path string) string {
	if !e.foldCase {
		return path
	}
	return strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
}

// RestorableCount returns how many records of the most recent session
// are eligible for restore. An empty history store counts zero.
func (e *Engine) RestorableCount() (int, error) {
	ids, err := e.logs.ListLogs()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	log, err := e.logs.LoadLog(ids[0])
	if err != nil {
		return 0, err
	}
	return log.RestorableCount(), nil
}

// RestoreLast reconciles the most recent session against the trash
// store. It fails with ErrNothingToRestore on an empty history store.
func (e *Engine) RestoreLast(progress Progress) (Result, error) {
	ids, err := e.logs.ListLogs()
	if err != nil {
		return Result{}, err
	}
	if len(ids) == 0 {
		return Result{}, ErrNothingToRestore
	}

	log, err := e.logs.LoadLog(ids[0])
	if err != nil {
		return Result{}, err
	}
	return e.RestoreLog(log, progress)
}

// RestoreLog reconciles every restorable record of log against the
// current trash-store contents. The trash index is built fresh from a
// single enumeration snapshot and never reused across calls.
func (e *Engine) RestoreLog(log *history.Log, progress Progress) (Result, error) {
	var result Result

	entries, err := e.bin.List()
	if err != nil {
		return result, fmt.Errorf("list trash contents: %w", err)
	}

	total := log.RestorableCount()

	// Index live entries by normalized reconstructed original path.
	index := make(map[string]trashbin.Entry, len(entries))
	for _, en := range entries {
		index[e.normalize(en.OriginalPath())] = en
	}

	for _, record := range log.Records {
		if !record.Restorable() {
			// Failed and permanent deletions are never candidates.
			continue
		}

		if progress != nil {
			if err := progress(record.Path, result.Restored, total, result.Errors, result.NotFound); err != nil {
				return result, err
			}
		}

		normalized := e.normalize(record.Path)

		if en, ok := index[normalized]; ok {
			// Exact hit: the record was a file (or an empty directory
			// the store kept whole).
			if err := e.restoreEntry(en); err != nil {
				result.Errors++
				e.warnf("Failed to restore %s: %v", record.Path, err)
				continue
			}
			result.Restored++
			result.RestoredBytes += record.SizeBytes
			e.sayf("%s Restored: %s", ui.Success("+"), ui.Muted(record.Path))
			continue
		}

		// No exact hit: the record may have been a directory. The trash
		// store holds its former leaves as individual entries, so scan
		// for children under the record path. The appended separator is
		// what keeps /data/foo from claiming /data/foobar's children.
		prefix := normalized
		if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += sepFor(normalized, e.foldCase)
		}

		children := childrenOf(index, prefix)
		if len(children) == 0 {
			// Trash emptied, or the item was already restored.
			result.NotFound++
			continue
		}

		restored := 0
		for _, key := range children {
			if err := e.restoreEntry(index[key]); err != nil {
				result.Errors++
				e.warnf("Failed to restore %s: %v", index[key].OriginalPath(), err)
				continue
			}
			restored++
		}
		if restored > 0 {
			// One directory record counts once, at its logged size; the
			// store does not expose per-child sizes.
			result.Restored++
			result.RestoredBytes += record.SizeBytes
			e.sayf("%s Restored directory: %s (%d items)", ui.Success("+"), ui.Muted(record.Path), restored)
		}
	}

	if progress != nil {
		if err := progress("", result.Restored, total, result.Errors, result.NotFound); err != nil {
			return result, err
		}
	}

	debuglog.Restore("session %s: %s", log.SessionID, result.Summary())
	return result, nil
}

// RestorePath reconciles a single target path against the trash store
// without consulting any history log. Restored bytes are re-derived
// from the filesystem after the move, since no record supplies a logged
// size. The whole call fails if the path matches neither exactly nor as
// a directory prefix.
func (e *Engine) RestorePath(path string) (Result, error) {
	var result Result

	entries, err := e.bin.List()
	if err != nil {
		return result, fmt.Errorf("list trash contents: %w", err)
	}

	normalized := e.normalize(path)
	prefix := normalized
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += sepFor(normalized, e.foldCase)
	}

	// Exact match first (files).
	for _, en := range entries {
		if e.normalize(en.OriginalPath()) != normalized {
			continue
		}
		if err := e.restoreEntry(en); err != nil {
			return result, fmt.Errorf("restore %s: %w", path, err)
		}
		result.Restored = 1
		result.RestoredBytes = statSize(en.OriginalPath())
		e.sayf("%s Restored: %s", ui.Success("+"), ui.Muted(path))
		return result, nil
	}

	// Directory fallback: restore every child independently.
	found := false
	restored := 0
	for _, en := range entries {
		if !strings.HasPrefix(e.normalize(en.OriginalPath()), prefix) {
			continue
		}
		found = true
		if err := e.restoreEntry(en); err != nil {
			result.Errors++
			e.warnf("Failed to restore %s: %v", en.OriginalPath(), err)
			continue
		}
		restored++
		result.RestoredBytes += statSize(en.OriginalPath())
	}

	if !found {
		return result, fmt.Errorf("file or directory not found in trash: %s", path)
	}
	if restored > 0 {
		result.Restored = 1
		e.sayf("%s Restored directory: %s (%d items)", ui.Success("+"), ui.Muted(path), restored)
	}
	return result, nil
}

// restoreEntry moves one trash entry back to its original location. The
// destination is refused if already occupied; missing parents are
// created on demand.
func (e *Engine) restoreEntry(en trashbin.Entry) error {
	dest := en.OriginalPath()

	if parent := filepath.Dir(dest); parent != "" {
		if _, err := os.Lstat(parent); os.IsNotExist(err) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("create parent directory %s: %w", parent, err)
			}
		}
	}

	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("destination already exists: %s", dest)
	}

	return e.bin.Restore(en)
}

// childrenOf collects index keys under prefix, sorted so reports are
// reproducible regardless of map iteration order.
func childrenOf(index map[string]trashbin.Entry, prefix string) []string {
	var keys []string
	for key := range index {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// sepFor picks the separator to append for prefix matching: normalized
// paths always use '/', raw case-sensitive paths use the platform one.
func sepFor(normalized string, folded bool) string {
	if folded || strings.ContainsRune(normalized, '/') {
		return "/"
	}
	return string(filepath.Separator)
}

func statSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (e *Engine) sayf(format string, args ...any) {
	if e.Quiet {
		return
	}
	fmt.Printf(format+"\n", args...)
}

func (e *Engine) warnf(format string, args ...any) {
	if e.Quiet {
		return
	}
	fmt.Fprintln(os.Stderr, ui.Error("x")+" "+fmt.Sprintf(format, args...))
}
