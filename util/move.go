package util

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	DefaultDeleteAttempts = 50
	DefaultDeleteInterval = 100 * time.Millisecond
	maxDeleteInterval     = 2 * time.Second
)

// Mover relocates files and directory trees. The zero value uses the
// default delete wait settings.
type Mover struct {
	// DeleteAttempts bounds how many times a conflicting merge target is
	// re-checked after deletion before ErrDeleteTimeout is returned.
	DeleteAttempts int
	// DeleteInterval is the first wait between checks; later waits grow
	// exponentially up to two seconds.
	DeleteInterval time.Duration
}

// CopyFile copies src to dst, replacing dst if it exists. The data is
// written to a temporary sibling of dst first and renamed into place.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrExpectedFile
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// MoveFile copies src over dst and then deletes src. Copying first keeps the
// move working across volumes.
func (m Mover) MoveFile(src, dst string) error {
	if err := CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to delete %s: %w", src, err)
	}
	return nil
}

// MergeDirectory moves every file below src to the same relative location
// below dst, creating directories as needed. Files already present at a
// target path are deleted first. Once all files are moved, src is removed
// along with any directories left empty. A symlinked src is refused.
func (m Mover) MergeDirectory(src, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrExpectedDirectory, src)
	}

	// group files by containing directory, in walk order
	var dirs []string
	groups := make(map[string][]string)
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		dir := filepath.Dir(path)
		if _, ok := groups[dir]; !ok {
			dirs = append(dirs, dir)
		}
		groups[dir] = append(groups[dir], path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking path %s: %w", src, err)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	for _, dir := range dirs {
		rel, err := filepath.Rel(src, dir)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		targetDir := filepath.Join(dst, rel)
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return err
		}
		for _, file := range groups[dir] {
			target := filepath.Join(targetDir, filepath.Base(file))
			if _, err := os.Lstat(target); err == nil {
				if err := m.DeleteAndWait(target); err != nil {
					return err
				}
			}
			if err := m.relocate(file, target); err != nil {
				return err
			}
		}
	}

	return os.RemoveAll(src)
}

// relocate renames src to dst, falling back to copy and delete when the two
// are on different devices.
func (m Mover) relocate(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EXDEV) {
		return m.MoveFile(src, dst)
	}
	return err
}

// DeleteAndWait removes path (recursively for directories) and waits until
// it no longer exists. Checks back off exponentially and give up with
// ErrDeleteTimeout after DeleteAttempts retries.
func (m Mover) DeleteAndWait(path string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.deleteInterval()
	b.MaxInterval = maxDeleteInterval
	b.MaxElapsedTime = 0

	attempts := 0
	var statErr error
	err := backoff.Retry(func() error {
		attempts++
		if err := os.RemoveAll(path); err != nil {
			return err
		}
		_, err := os.Lstat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			statErr = err
			return backoff.Permanent(err)
		default:
			return fmt.Errorf("%s still exists", path)
		}
	}, backoff.WithMaxRetries(b, uint64(m.deleteAttempts())))
	if statErr != nil {
		return statErr
	}
	if err != nil {
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrDeleteTimeout, path, attempts, err)
	}
	return nil
}

func (m Mover) deleteAttempts() int {
	if m.DeleteAttempts < 1 {
		return DefaultDeleteAttempts
	}
	return m.DeleteAttempts
}

func (m Mover) deleteInterval() time.Duration {
	if m.DeleteInterval <= 0 {
		return DefaultDeleteInterval
	}
	return m.DeleteInterval
}
