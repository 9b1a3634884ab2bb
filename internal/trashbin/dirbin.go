package trashbin

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DirBin is a directory-backed trash store. Trashed payloads live under
// <root>/files/<id> and a JSON sidecar under <root>/meta/<id>.json
// records where each payload came from. It is the default store on
// platforms without a system recycle bin and the backend integration
// tests run against.
type DirBin struct {
	root string
}

// dirEntryMeta is the persisted sidecar for one trashed item.
type dirEntryMeta struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OriginalParent string    `json:"original_parent"`
	IsDir          bool      `json:"is_dir"`
	DeletedAt      time.Time `json:"deleted_at"`
}

// NewDirBin opens (creating if needed) a directory-backed bin rooted at
// root.
func NewDirBin(root string) (*DirBin, error) {
	for _, sub := range []string{"files", "meta"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("init trash directory: %w", err)
		}
	}
	return &DirBin{root: root}, nil
}

func (b *DirBin) filesDir() string { return filepath.Join(b.root, "files") }
func (b *DirBin) metaDir() string  { return filepath.Join(b.root, "meta") }

func (b *DirBin) metaPath(id string) string {
	return filepath.Join(b.metaDir(), id+".json")
}

// Put moves src into the bin, recording its original location.
func (b *DirBin) Put(src string) error {
	src = filepath.Clean(src)
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	meta := dirEntryMeta{
		ID:             uuid.NewString(),
		Name:           filepath.Base(src),
		OriginalParent: filepath.Dir(src),
		IsDir:          info.IsDir(),
		DeletedAt:      time.Now(),
	}

	dst := filepath.Join(b.filesDir(), meta.ID)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s to trash: %w", src, err)
	}

	raw, err := json.Marshal(meta)
	if err == nil {
		err = os.WriteFile(b.metaPath(meta.ID), raw, 0o644)
	}
	if err != nil {
		// Without a sidecar the payload is unrecoverable; move it back.
		_ = os.Rename(dst, src)
		return fmt.Errorf("record trash metadata for %s: %w", src, err)
	}
	return nil
}

// List enumerates current bin contents. Sidecars that fail to parse are
// skipped rather than failing the whole listing.
func (b *DirBin) List() ([]Entry, error) {
	des, err := os.ReadDir(b.metaDir())
	if err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}

	var entries []Entry
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(b.metaDir(), de.Name()))
		if err != nil {
			continue
		}
		var meta dirEntryMeta
		if err := json.Unmarshal(raw, &meta); err != nil || meta.ID == "" {
			continue
		}
		entries = append(entries, Entry{
			OriginalParent: meta.OriginalParent,
			Name:           meta.Name,
			IsDir:          meta.IsDir,
			DeletedAt:      meta.DeletedAt,
			ID:             meta.ID,
		})
	}
	return entries, nil
}

// Restore moves the entry's payload back to its original location and
// drops the sidecar.
func (b *DirBin) Restore(e Entry) error {
	payload := filepath.Join(b.filesDir(), e.ID)
	if _, err := os.Lstat(payload); err != nil {
		if os.IsNotExist(err) {
			return ErrNotInBin
		}
		return err
	}

	dest := e.OriginalPath()
	if err := os.Rename(payload, dest); err != nil {
		return fmt.Errorf("restore %s: %w", dest, err)
	}
	_ = os.Remove(b.metaPath(e.ID))
	return nil
}

// Purge permanently removes an entry's payload and sidecar.
func (b *DirBin) Purge(e Entry) error {
	if err := os.RemoveAll(filepath.Join(b.filesDir(), e.ID)); err != nil {
		return err
	}
	return os.Remove(b.metaPath(e.ID))
}

// TotalSize walks the payload directory and sums file sizes.
func (b *DirBin) TotalSize() (int64, error) {
	var total int64
	err := filepath.WalkDir(b.filesDir(), func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep counting the rest
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total, err
}
