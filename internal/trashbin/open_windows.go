//go:build windows

package trashbin

// Open returns the platform trash store: the system Recycle Bin.
func Open() (Bin, error) {
	return NewShellBin(), nil
}
