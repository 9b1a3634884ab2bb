package trashbin

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MemoryBin is an in-memory Bin used by tests and dry-run previews. Put
// consumes real files; Restore materializes the stored payload back on
// disk so callers can stat the result. RestoreErrs forces per-entry
// restore failures, and ListErr forces enumeration failure.
type MemoryBin struct {
	RestoreErrs map[string]error // keyed by original path
	ListErr     error

	items map[string]memItem
}

type memItem struct {
	entry   Entry
	payload []byte
	mode    os.FileMode
}

// NewMemoryBin returns an empty in-memory bin.
func NewMemoryBin() *MemoryBin {
	return &MemoryBin{items: make(map[string]memItem)}
}

// Add seeds the bin with a synthetic entry whose payload is content,
// without touching the filesystem. Returns the created entry.
func (b *MemoryBin) Add(originalPath string, content []byte) Entry {
	e := Entry{
		OriginalParent: filepath.Dir(originalPath),
		Name:           filepath.Base(originalPath),
		DeletedAt:      time.Now(),
		ID:             uuid.NewString(),
	}
	b.items[e.ID] = memItem{entry: e, payload: content, mode: 0o644}
	return e
}

// Put reads and removes src, keeping its content in memory.
func (b *MemoryBin) Put(src string) error {
	src = filepath.Clean(src)
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("memory bin does not hold directories: %s", src)
	}
	payload, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return err
	}
	e := Entry{
		OriginalParent: filepath.Dir(src),
		Name:           filepath.Base(src),
		DeletedAt:      time.Now(),
		ID:             uuid.NewString(),
	}
	b.items[e.ID] = memItem{entry: e, payload: payload, mode: info.Mode()}
	return nil
}

// List returns the current entries.
func (b *MemoryBin) List() ([]Entry, error) {
	if b.ListErr != nil {
		return nil, b.ListErr
	}
	entries := make([]Entry, 0, len(b.items))
	for _, it := range b.items {
		entries = append(entries, it.entry)
	}
	return entries, nil
}

// Restore writes the stored payload back to the entry's original path.
func (b *MemoryBin) Restore(e Entry) error {
	if err, ok := b.RestoreErrs[e.OriginalPath()]; ok && err != nil {
		return err
	}
	it, ok := b.items[e.ID]
	if !ok {
		return ErrNotInBin
	}
	if err := os.WriteFile(e.OriginalPath(), it.payload, it.mode); err != nil {
		return err
	}
	delete(b.items, e.ID)
	return nil
}

// Len returns the number of items currently held.
func (b *MemoryBin) Len() int { return len(b.items) }
