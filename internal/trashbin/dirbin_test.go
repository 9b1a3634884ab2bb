package trashbin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirBinPutListRestore(t *testing.T) {
	tmp := t.TempDir()
	bin, err := NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	src := filepath.Join(tmp, "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, bin.Put(src))
	require.NoFileExists(t, src, "Put moves the file out of place")

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "doc.txt", entries[0].Name)
	require.Equal(t, tmp, entries[0].OriginalParent)
	require.Equal(t, src, entries[0].OriginalPath())
	require.False(t, entries[0].IsDir)

	require.NoError(t, bin.Restore(entries[0]))
	content, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, "payload", string(content))

	entries, err = bin.List()
	require.NoError(t, err)
	require.Empty(t, entries, "restore drops the sidecar")
}

func TestDirBinPutDirectory(t *testing.T) {
	tmp := t.TempDir()
	bin, err := NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	dir := filepath.Join(tmp, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("a"), 0o644))

	require.NoError(t, bin.Put(dir))
	require.NoDirExists(t, dir)

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].IsDir)

	require.NoError(t, bin.Restore(entries[0]))
	require.FileExists(t, filepath.Join(dir, "sub", "a.txt"))
}

func TestDirBinRestoreMissingPayload(t *testing.T) {
	tmp := t.TempDir()
	bin, err := NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	src := filepath.Join(tmp, "gone.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	require.NoError(t, bin.Put(src))

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Simulate another tool emptying the bin behind our back.
	require.NoError(t, os.Remove(filepath.Join(tmp, "trash", "files", entries[0].ID)))

	require.ErrorIs(t, bin.Restore(entries[0]), ErrNotInBin)
}

func TestDirBinPurge(t *testing.T) {
	tmp := t.TempDir()
	bin, err := NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	src := filepath.Join(tmp, "junk.log")
	require.NoError(t, os.WriteFile(src, []byte("1234"), 0o644))
	require.NoError(t, bin.Put(src))

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, bin.Purge(entries[0]))

	entries, err = bin.List()
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NoFileExists(t, src, "purge never restores")
}

func TestDirBinTotalSize(t *testing.T) {
	tmp := t.TempDir()
	bin, err := NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	size, err := bin.TotalSize()
	require.NoError(t, err)
	require.Zero(t, size)

	a := filepath.Join(tmp, "a.bin")
	require.NoError(t, os.WriteFile(a, make([]byte, 100), 0o644))
	require.NoError(t, bin.Put(a))

	b := filepath.Join(tmp, "b.bin")
	require.NoError(t, os.WriteFile(b, make([]byte, 28), 0o644))
	require.NoError(t, bin.Put(b))

	size, err = bin.TotalSize()
	require.NoError(t, err)
	require.Equal(t, int64(128), size)
}

func TestDirBinListSkipsCorruptSidecars(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "trash")
	bin, err := NewDirBin(root)
	require.NoError(t, err)

	src := filepath.Join(tmp, "keep.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	require.NoError(t, bin.Put(src))

	require.NoError(t, os.WriteFile(filepath.Join(root, "meta", "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "meta", "empty.json"), []byte("{}"), 0o644))

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "keep.txt", entries[0].Name)
}

func TestMemoryBinPutAndRestore(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "note.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o600))

	bin := NewMemoryBin()
	require.NoError(t, bin.Put(src))
	require.NoFileExists(t, src)
	require.Equal(t, 1, bin.Len())

	entries, err := bin.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, bin.Restore(entries[0]))
	require.FileExists(t, src)
	require.Zero(t, bin.Len())
}
