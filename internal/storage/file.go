package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File is a small state file that is read whole and replaced whole.
// Every access holds an exclusive advisory lock on Path + ".lock", and
// replacement goes through a temp file in the same directory plus a rename,
// so readers never observe a half-written file.
type File struct {
	Path        string
	LockTimeout time.Duration
	// Entity names the contents in errors ("token").
	Entity string
}

// Read returns the file contents. A missing file yields a *StorageError
// wrapping fs.ErrNotExist.
func (f *File) Read() ([]byte, error) {
	var data []byte
	err := f.withLock(func() error {
		var err error
		data, err = os.ReadFile(f.Path)
		if err != nil {
			return &StorageError{Op: "read", Entity: f.Entity, ID: f.Path, Err: err}
		}
		return nil
	})
	return data, err
}

// Replace atomically swaps the file contents for data with permission perm.
// Missing parent directories are created.
func (f *File) Replace(data []byte, perm os.FileMode) error {
	return f.withLock(func() error {
		if err := replaceFile(f.Path, data, perm); err != nil {
			return &StorageError{Op: "write", Entity: f.Entity, ID: f.Path, Err: err}
		}
		return nil
	})
}

func (f *File) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return &StorageError{Op: "lock", Entity: f.Entity, ID: f.Path, Err: err}
	}
	l, err := Acquire(f.Path, f.LockTimeout)
	if err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

// replaceFile writes data next to path and renames it into place.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	committed = true
	return nil
}
