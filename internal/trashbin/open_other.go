//go:build !windows

package trashbin

import "github.com/lakshaymaurya-felt/winsweep/internal/config"

// Open returns the platform trash store: a directory-backed bin under
// the application data directory.
func Open() (Bin, error) {
	root, err := config.TrashDir()
	if err != nil {
		return nil, err
	}
	return NewDirBin(root)
}
