// Package lock guards a task store against concurrent sessions.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// ErrBusy is returned when another session holds the lock.
var ErrBusy = errors.New("task store is in use by another session")

// Lock is an exclusive advisory lock on <path>.lock.
type Lock struct {
	file *os.File
	path string
}

// PathFor returns the lock file used for the store at storePath.
func PathFor(storePath string) string {
	return storePath + ".lock"
}

// TryAcquire takes the lock without blocking and returns ErrBusy when
// another holder exists.
func TryAcquire(storePath string) (*Lock, error) {
	file, err := open(storePath)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrBusy, storePath)
		}
		return nil, fmt.Errorf("lock %s: %w", file.Name(), err)
	}
	return &Lock{file: file, path: file.Name()}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release releases the lock. The lock file is left in place.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func open(storePath string) (*os.File, error) {
	lockPath := PathFor(storePath)
	if dir := filepath.Dir(lockPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock dir: %w", err)
		}
	}
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return file, nil
}
