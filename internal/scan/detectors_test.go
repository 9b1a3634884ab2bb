package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
)

// mkProject lays out a project directory with one build artifact whose
// contents total size bytes.
func mkProject(t *testing.T, root, name, marker, artifact string, size int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, marker), []byte("{}"), 0o644))
	ap := filepath.Join(dir, artifact)
	require.NoError(t, os.MkdirAll(ap, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ap, "blob"), make([]byte, size), 0o644))
	return ap
}

func TestScanBuildFindsStaleArtifacts(t *testing.T) {
	root := t.TempDir()
	nm := mkProject(t, root, "webapp", "package.json", "node_modules", 300)
	tg := mkProject(t, root, "svc", "go.mod", "dist", 200)

	// Age both artifacts past any threshold.
	old := time.Now().Add(-90 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(nm, old, old))
	require.NoError(t, os.Chtimes(tg, old, old))

	res, err := scanBuild(root, config.Settings{ProjectAgeDays: 30})
	require.NoError(t, err)

	require.Equal(t, 2, res.Items)
	require.Equal(t, int64(500), res.Bytes)
	paths := []string{res.Candidates[0].Path, res.Candidates[1].Path}
	require.ElementsMatch(t, []string{nm, tg}, paths)
	for _, c := range res.Candidates {
		require.True(t, c.IsDir)
	}
}

func TestScanBuildSkipsRecentProjects(t *testing.T) {
	root := t.TempDir()
	mkProject(t, root, "active", "go.mod", "dist", 100)

	res, err := scanBuild(root, config.Settings{ProjectAgeDays: 30})
	require.NoError(t, err)
	require.Zero(t, res.Items, "freshly built artifacts are left alone")

	// With no age threshold the same artifact is reported.
	res, err = scanBuild(root, config.Settings{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Items)
}

func TestScanBuildIgnoresNonProjects(t *testing.T) {
	root := t.TempDir()

	// An artifact-named directory without a project marker beside it.
	loose := filepath.Join(root, "stuff", "node_modules")
	require.NoError(t, os.MkdirAll(loose, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(loose, "blob"), make([]byte, 50), 0o644))

	res, err := scanBuild(root, config.Settings{})
	require.NoError(t, err)
	require.Zero(t, res.Items)
}

func TestScanBuildHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	mkProject(t, root, "skipme", "go.mod", "dist", 100)
	kept := mkProject(t, root, "keepme", "go.mod", "dist", 100)

	res, err := scanBuild(root, config.Settings{Exclude: []string{"skipme"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Items)
	require.Equal(t, kept, res.Candidates[0].Path)
}

func TestScanBuildHonorsMinSize(t *testing.T) {
	root := t.TempDir()
	mkProject(t, root, "small", "go.mod", "dist", 10)
	big := mkProject(t, root, "big", "go.mod", "dist", 5000)

	res, err := scanBuild(root, config.Settings{MinSizeBytes: 1000})
	require.NoError(t, err)
	require.Equal(t, 1, res.Items)
	require.Equal(t, big, res.Candidates[0].Path)
}

func TestScanBuildMissingRoot(t *testing.T) {
	_, err := scanBuild(filepath.Join(t.TempDir(), "nope"), config.Settings{})
	require.Error(t, err)
}

func TestScanTrashReportsOccupancy(t *testing.T) {
	tmp := t.TempDir()
	bin, err := trashbin.NewDirBin(filepath.Join(tmp, "trash"))
	require.NoError(t, err)

	res, err := scanTrash(bin)
	require.NoError(t, err)
	require.Zero(t, res.Items)
	require.Zero(t, res.Bytes)

	junk := filepath.Join(tmp, "junk.bin")
	require.NoError(t, os.WriteFile(junk, make([]byte, 64), 0o644))
	require.NoError(t, bin.Put(junk))

	res, err = scanTrash(bin)
	require.NoError(t, err)
	require.Equal(t, 1, res.Items)
	require.Equal(t, int64(64), res.Bytes)
	require.Empty(t, res.Candidates, "trash entries are emptied wholesale, not per path")
}

func TestDirSizeTotalsFilesOnly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "y"), make([]byte, 20), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "z"), make([]byte, 30), 0o644))

	require.Equal(t, int64(60), dirSize(root))
}
