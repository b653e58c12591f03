package fsops

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestMoveFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	src := filepath.Join(srcDir, "file.txt")
	writeFile(t, src, "hello")

	require.NoError(t, movePath(src, destDir))

	assert.NoFileExists(t, src, "source is gone after a move")
	content, err := os.ReadFile(filepath.Join(destDir, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestMoveDirectory(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	dir := filepath.Join(srcDir, "dir")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, filepath.Join(dir, "inner.txt"), "inner")

	require.NoError(t, movePath(dir, destDir))

	assert.NoDirExists(t, dir)
	assert.FileExists(t, filepath.Join(destDir, "dir", "inner.txt"))
}

// forceCrossVolume makes every rename fail the way a move between two
// mount points does, so the fallback runs in a plain tmpdir
func forceCrossVolume(t *testing.T) {
	t.Helper()
	prev := rename
	rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}
	t.Cleanup(func() { rename = prev })
}

func TestMoveFallsBackAcrossVolumes(t *testing.T) {
	forceCrossVolume(t)

	srcDir := t.TempDir()
	destDir := t.TempDir()

	src := filepath.Join(srcDir, "file.txt")
	writeFile(t, src, "hello")

	require.NoError(t, movePath(src, destDir))

	assert.NoFileExists(t, src, "source is gone after the fallback")
	content, err := os.ReadFile(filepath.Join(destDir, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestMoveFallsBackForDirectories(t *testing.T) {
	forceCrossVolume(t)

	srcDir := t.TempDir()
	destDir := t.TempDir()

	dir := filepath.Join(srcDir, "dir")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, filepath.Join(dir, "inner.txt"), "inner")
	require.NoError(t, os.Symlink("inner.txt", filepath.Join(dir, "alias")))

	require.NoError(t, movePath(dir, destDir))

	assert.NoDirExists(t, dir)
	assert.FileExists(t, filepath.Join(destDir, "dir", "inner.txt"))
	target, err := os.Readlink(filepath.Join(destDir, "dir", "alias"))
	require.NoError(t, err)
	assert.Equal(t, "inner.txt", target)
}

func TestMoveSurfacesNonCrossVolumeRenameErrors(t *testing.T) {
	prev := rename
	rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EACCES}
	}
	t.Cleanup(func() { rename = prev })

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "file.txt")
	writeFile(t, src, "stays put")

	err := movePath(src, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renaming")
	assert.True(t, errors.Is(err, syscall.EACCES))
	assert.FileExists(t, src, "a failed move leaves the source alone")
}

func TestCopyThenDeleteRoundTrip(t *testing.T) {
	// the pieces the cross-volume fallback is made of, exercised
	// back to back on one volume
	srcDir := t.TempDir()
	destDir := t.TempDir()

	src := filepath.Join(srcDir, "file.txt")
	writeFile(t, src, "round trip")
	info, err := os.Stat(src)
	require.NoError(t, err)

	require.NoError(t, copyPath(src, destDir))
	require.NoError(t, deletePath(src))

	assert.NoFileExists(t, src)
	dest := filepath.Join(destDir, "file.txt")
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "round trip", string(content))

	destInfo, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime().Unix(), destInfo.ModTime().Unix())
}
