package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastMover = Mover{DeleteAttempts: 5, DeleteInterval: time.Millisecond}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// readTree returns every file below root keyed by slash-separated relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))

	t.Run("creates parent directories", func(t *testing.T) {
		dst := filepath.Join(dir, "a", "b", "dst.bin")
		require.NoError(t, CopyFile(src, dst))
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dst := filepath.Join(dir, "existing.bin")
		require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0o644))
		require.NoError(t, CopyFile(src, dst))
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(dir, "a", "b"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("directory source", func(t *testing.T) {
		err := CopyFile(dir, filepath.Join(dir, "nope"))
		assert.ErrorIs(t, err, ErrExpectedFile)
	})
}

func TestMover_MoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a1b2c3d4e5f60789.dat")
	dst := filepath.Join(dir, "characters", "hero.dat")
	require.NoError(t, os.WriteFile(src, []byte("hero"), 0o644))

	require.NoError(t, fastMover.MoveFile(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be deleted")
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hero", string(data))
}

func TestMover_MergeDirectory(t *testing.T) {
	t.Run("into missing destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a1b2c3d4e5f60789_fpk")
		dst := filepath.Join(dir, "characters", "hero_fpk")
		writeFiles(t, src, map[string]string{
			"x.bin":          "x",
			"y.bin":          "y",
			"sub/z.bin":      "z",
			"sub/deep/w.bin": "w",
		})
		require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0o755))

		require.NoError(t, fastMover.MergeDirectory(src, dst))

		_, err := os.Stat(src)
		assert.True(t, os.IsNotExist(err), "source tree should be removed")
		assert.Equal(t, map[string]string{
			"x.bin":          "x",
			"y.bin":          "y",
			"sub/z.bin":      "z",
			"sub/deep/w.bin": "w",
		}, readTree(t, dst))
	})

	t.Run("into partially existing destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		writeFiles(t, src, map[string]string{
			"x.bin":     "new x",
			"sub/z.bin": "new z",
		})
		writeFiles(t, dst, map[string]string{
			"x.bin":     "old x",
			"keep.bin":  "keep",
			"sub/q.bin": "q",
		})
		// a directory where a file is about to land
		writeFiles(t, dst, map[string]string{"sub/z.bin/inner": "stale"})

		require.NoError(t, fastMover.MergeDirectory(src, dst))

		assert.Equal(t, map[string]string{
			"x.bin":     "new x",
			"keep.bin":  "keep",
			"sub/q.bin": "q",
			"sub/z.bin": "new z",
		}, readTree(t, dst))
	})

	t.Run("rerun is idempotent", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		files := map[string]string{"x.bin": "x", "sub/y.bin": "y"}

		writeFiles(t, src, files)
		require.NoError(t, fastMover.MergeDirectory(src, dst))
		first := readTree(t, dst)

		writeFiles(t, src, files)
		require.NoError(t, fastMover.MergeDirectory(src, dst))
		assert.Equal(t, first, readTree(t, dst))
	})

	t.Run("empty source still creates destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		require.NoError(t, os.MkdirAll(src, 0o755))

		require.NoError(t, fastMover.MergeDirectory(src, dst))
		info, err := os.Stat(dst)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		_, err = os.Stat(src)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("file source", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(src, nil, 0o644))
		err := fastMover.MergeDirectory(src, filepath.Join(dir, "dst"))
		assert.ErrorIs(t, err, ErrExpectedDirectory)
	})

	t.Run("symlinked source is refused", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target")
		writeFiles(t, target, map[string]string{"x.bin": "x"})
		link := filepath.Join(dir, "beef_fpk")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		dst := filepath.Join(dir, "out", "hero_fpk")

		err := fastMover.MergeDirectory(link, dst)
		assert.ErrorIs(t, err, ErrExpectedDirectory)

		_, err = os.Lstat(link)
		assert.NoError(t, err, "link should stay in place")
		_, err = os.Lstat(filepath.Join(dir, "out"))
		assert.True(t, os.IsNotExist(err), "nothing should be created next to the destination")
		assert.Equal(t, map[string]string{"x.bin": "x"}, readTree(t, target))
	})
}

func TestMover_DeleteAndWait(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		require.NoError(t, fastMover.DeleteAndWait(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("directory tree", func(t *testing.T) {
		path := filepath.Join(dir, "tree")
		writeFiles(t, path, map[string]string{"a/b/c": "x", "d": "y"})
		require.NoError(t, fastMover.DeleteAndWait(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing path", func(t *testing.T) {
		require.NoError(t, fastMover.DeleteAndWait(filepath.Join(dir, "missing")))
	})
}

func TestMover_DeleteAndWaitGivesUp(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can delete from read-only directories")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	target := filepath.Join(locked, "target")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o555))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	start := time.Now()
	err := Mover{DeleteAttempts: 3, DeleteInterval: time.Millisecond}.DeleteAndWait(target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeleteTimeout), "got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestMover_Defaults(t *testing.T) {
	var m Mover
	assert.Equal(t, DefaultDeleteAttempts, m.deleteAttempts())
	assert.Equal(t, DefaultDeleteInterval, m.deleteInterval())
}
