package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
)

func newQuietOrch(bin trashbin.Bin) *Orchestrator {
	o := New(bin, config.Settings{})
	o.Quiet = true
	return o
}

func TestCleanRequiresAuthorization(t *testing.T) {
	o := newQuietOrch(trashbin.NewMemoryBin())
	_, _, err := o.Clean(&Results{}, CleanOptions{})
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCleanMovesToTrashAndRecords(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.tmp")
	b := filepath.Join(tmp, "b.tmp")
	require.NoError(t, os.WriteFile(a, []byte("aaaa"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("bb"), 0o644))

	results := &Results{Temp: CategoryResult{
		Items: 2,
		Bytes: 6,
		Candidates: []Candidate{
			{Path: a, SizeBytes: 4},
			{Path: b, SizeBytes: 2},
		},
	}}

	bin := trashbin.NewMemoryBin()
	o := newQuietOrch(bin)

	summary, log, err := o.Clean(results, CleanOptions{Authorized: true})
	require.NoError(t, err)

	require.Equal(t, 2, summary.Cleaned)
	require.Equal(t, 0, summary.Errors)
	require.Equal(t, int64(6), summary.Bytes)
	require.Equal(t, 2, bin.Len())
	require.NoFileExists(t, a)
	require.NoFileExists(t, b)

	require.Len(t, log.Records, 2)
	for _, rec := range log.Records {
		require.True(t, rec.Success)
		require.False(t, rec.Permanent)
		require.True(t, rec.Restorable())
	}
}

func TestCleanPermanentBypassesTrash(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.tmp")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))

	results := &Results{Cache: CategoryResult{
		Items:      1,
		Bytes:      1,
		Candidates: []Candidate{{Path: a, SizeBytes: 1}},
	}}

	bin := trashbin.NewMemoryBin()
	o := newQuietOrch(bin)

	summary, log, err := o.Clean(results, CleanOptions{Authorized: true, Permanent: true})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Cleaned)
	require.Zero(t, bin.Len(), "permanent deletion never enters the bin")
	require.NoFileExists(t, a)

	require.Len(t, log.Records, 1)
	require.True(t, log.Records[0].Permanent)
	require.False(t, log.Records[0].Restorable())
}

func TestCleanContinuesAfterFailure(t *testing.T) {
	tmp := t.TempDir()
	good := filepath.Join(tmp, "good.tmp")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o644))
	missing := filepath.Join(tmp, "already-gone.tmp")

	results := &Results{Temp: CategoryResult{
		Items: 2,
		Bytes: 4,
		Candidates: []Candidate{
			{Path: missing, SizeBytes: 2},
			{Path: good, SizeBytes: 2},
		},
	}}

	o := newQuietOrch(trashbin.NewMemoryBin())
	summary, log, err := o.Clean(results, CleanOptions{Authorized: true})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Cleaned)
	require.Equal(t, 1, summary.Errors)
	require.Equal(t, int64(2), summary.Bytes)

	// Both attempts are recorded, in order, with their outcomes.
	require.Len(t, log.Records, 2)
	require.False(t, log.Records[0].Success)
	require.True(t, log.Records[1].Success)
}

func TestCleanEmptyTrash(t *testing.T) {
	tmp := t.TempDir()
	bin, err := trashbin.NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	junk := filepath.Join(tmp, "junk.log")
	require.NoError(t, os.WriteFile(junk, make([]byte, 50), 0o644))
	require.NoError(t, bin.Put(junk))

	results := &Results{Trash: CategoryResult{Items: 1, Bytes: 50}}

	o := newQuietOrch(bin)
	summary, log, err := o.Clean(results, CleanOptions{Authorized: true, EmptyTrash: true})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Cleaned)
	require.Equal(t, int64(50), summary.Bytes)
	require.Empty(t, log.Records, "emptying the store is not restorable, so no records")

	entries, err := bin.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestIsProtected(t *testing.T) {
	protected := []string{
		filepath.Join(string(filepath.Separator), "data", "keep"),
	}

	require.True(t, isProtected(filepath.Join(string(filepath.Separator), "data", "keep"), protected))
	require.True(t, isProtected(filepath.Join(string(filepath.Separator), "data"), protected),
		"deleting a parent would take the protected tree with it")
	require.False(t, isProtected(filepath.Join(string(filepath.Separator), "data", "keeper"), protected),
		"name prefix without a path boundary is not a match")
	require.False(t, isProtected(filepath.Join(string(filepath.Separator), "data", "other"), protected))

	// Case-insensitive, matching Windows filesystems.
	require.True(t, isProtected(filepath.Join(string(filepath.Separator), "DATA", "KEEP"), protected))
}

func TestScanDetectorFailureDegradesToWarning(t *testing.T) {
	bin := trashbin.NewMemoryBin()
	bin.ListErr = os.ErrPermission

	o := newQuietOrch(bin)
	results := o.Scan(t.TempDir(), Options{Trash: true})

	require.Zero(t, results.Trash.Items)
	require.Len(t, results.Warnings, 1)
	require.Contains(t, results.Warnings[0], "trash scan failed")
}

func TestOptionsAny(t *testing.T) {
	require.False(t, Options{}.Any())
	require.True(t, Options{Temp: true}.Any())
	require.True(t, All().Any())
}
