// Package trashbin abstracts the OS trash store behind a small capability
// interface so callers (the cleaner and the restore engine) never depend
// on a concrete platform implementation.
package trashbin

import (
	"errors"
	"path/filepath"
	"time"
)

// Entry is one item currently held by the trash store. The original
// absolute path is reconstructed by joining OriginalParent and Name.
// ID is an opaque handle understood only by the Bin that produced it;
// entries are borrowed for one listing and must not be cached, because
// the store's contents can change between calls.
type Entry struct {
	OriginalParent string
	Name           string
	IsDir          bool
	DeletedAt      time.Time
	ID             string
}

// OriginalPath returns the absolute path the entry occupied before it
// was trashed.
func (e Entry) OriginalPath() string {
	return filepath.Join(e.OriginalParent, e.Name)
}

// ErrNotInBin is returned by Restore when the entry's handle no longer
// resolves to a trashed item (e.g. emptied by another tool mid-flight).
var ErrNotInBin = errors.New("entry no longer present in trash")

// Bin is the trash-store capability. Put moves a live path into the
// store, List enumerates current contents, and Restore moves an entry
// back to its original location. Restore does not create destination
// parents and does not check for collisions; that policy belongs to the
// caller.
type Bin interface {
	Put(src string) error
	List() ([]Entry, error)
	Restore(e Entry) error
}

// Sizer is optionally implemented by bins that can report the total
// bytes currently held.
type Sizer interface {
	TotalSize() (int64, error)
}
