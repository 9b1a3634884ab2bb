// Package history persists the deletion record of each cleaning session.
// Sessions are write-once JSON files; nothing ever mutates a session
// after it is written, so concurrent readers are always safe.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
)

// Record is one deletion attempt from a cleaning session. A record with
// Success false or Permanent true can never be restored.
type Record struct {
	Path      string `json:"path"`
	Success   bool   `json:"success"`
	Permanent bool   `json:"permanent"`
	SizeBytes int64  `json:"size_bytes"`
}

// Restorable reports whether the record is a candidate for restoration.
func (r Record) Restorable() bool {
	return r.Success && !r.Permanent
}

// Log is the ordered deletion record of one cleaning session.
type Log struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Records   []Record  `json:"records"`
}

// NewLog starts a session log stamped now.
func NewLog() *Log {
	return &Log{
		SessionID: uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// Append adds a record to the session. Only valid before the log is
// written to a Store.
func (l *Log) Append(r Record) {
	l.Records = append(l.Records, r)
}

// RestorableCount returns the number of records eligible for restore.
func (l *Log) RestorableCount() int {
	n := 0
	for _, r := range l.Records {
		if r.Restorable() {
			n++
		}
	}
	return n
}

// ─── Store ───────────────────────────────────────────────────────────────────

const (
	logPrefix = "clean-"
	logExt    = ".json"
	// stampLayout yields ids that sort chronologically as strings.
	stampLayout = "20060102-150405"
)

// Store reads and writes session logs in a single directory. One file
// per session, named clean-<stamp>[-<seq>].json; the seq suffix
// disambiguates sessions created within the same second and doubles as
// the insertion-order tiebreak.
type Store struct {
	dir string
}

// NewStore opens a store over dir. The directory is not required to
// exist yet; an absent directory is an empty store.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// OpenDefault opens the store in the application data directory.
func OpenDefault() (*Store, error) {
	dir, err := config.LogsDir()
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return NewStore(dir), nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// ListLogs returns all session ids, newest first. An empty or absent
// store yields an empty list; only an unreadable directory is an error.
func (s *Store) ListLogs() ([]string, error) {
	des, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list deletion history: %w", err)
	}

	var ids []string
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, logExt))
	}

	sort.Slice(ids, func(i, j int) bool {
		si, qi := splitID(ids[i])
		sj, qj := splitID(ids[j])
		if si != sj {
			return si > sj // newer stamp first
		}
		return qi > qj // later insertion first
	})
	return ids, nil
}

// splitID separates a session id into its timestamp part and sequence
// number. Ids without a sequence sort as sequence 0.
func splitID(id string) (stamp string, seq int) {
	rest := strings.TrimPrefix(id, logPrefix)
	if len(rest) <= len(stampLayout) {
		return rest, 0
	}
	stamp = rest[:len(stampLayout)]
	if tail := strings.TrimPrefix(rest[len(stampLayout):], "-"); tail != "" {
		if n, err := strconv.Atoi(tail); err == nil {
			seq = n
		}
	}
	return stamp, seq
}

// LoadLog reads the identified session. It fails if the session no
// longer exists or cannot be parsed.
func (s *Store) LoadLog(id string) (*Log, error) {
	if strings.ContainsAny(id, `/\`) || id == "" {
		return nil, fmt.Errorf("invalid session id %q", id)
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, id+logExt))
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var log Log
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", id, err)
	}
	return &log, nil
}

// Write persists a completed session atomically (temp file + rename)
// and returns its id. The log must not be modified afterwards.
func (s *Store) Write(log *Log) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create history directory: %w", err)
	}

	raw, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	stamp := log.CreatedAt.Format(stampLayout)
	id := logPrefix + stamp
	for seq := 1; ; seq++ {
		if _, err := os.Stat(filepath.Join(s.dir, id+logExt)); os.IsNotExist(err) {
			break
		}
		id = fmt.Sprintf("%s%s-%d", logPrefix, stamp, seq)
	}

	tmp, err := os.CreateTemp(s.dir, id+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("write session: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, id+logExt)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("commit session: %w", err)
	}
	return id, nil
}
