package storage

import (
	"os"
	"time"
)

// lockPollInterval is how often a contended lock is retried.
const lockPollInterval = 10 * time.Millisecond

// Lock is a held advisory lock on a sidecar ".lock" file. The file itself
// is never removed: a holder that unlinked it could let a waiter lock the
// old inode while a newcomer locks a fresh one.
type Lock struct {
	file *os.File
}

// Acquire takes an exclusive lock guarding path, waiting at most timeout.
// It returns ErrLockTimeout if another holder keeps it longer.
func Acquire(path string, timeout time.Duration) (*Lock, error) {
	lockPath := path + ".lock"
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, &StorageError{Op: "lock", Entity: "file", ID: lockPath, Err: err}
	}

	deadline := time.Now().Add(timeout)
	for tryLock(file) != nil {
		if !time.Now().Before(deadline) {
			file.Close()
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
	return &Lock{file: file}, nil
}

// Release drops the lock and leaves the lock file in place. It is safe to
// call twice.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	unlock(l.file)
	l.file.Close()
	l.file = nil
}
