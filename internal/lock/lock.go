// Package lock provides run-level locking for the generation pipeline.
// The persisted workspace, manifest, and layer table have no concurrent-writer
// protection, so a whole pipeline run is guarded by one exclusion lock.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// LockInfo contains the metadata stored in a lock file.
type LockInfo struct {
	PID       int       `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
	Cmd       string    `json:"cmd,omitempty"`
}

// ErrLocked indicates a non-stale lock is held by someone else.
type ErrLocked struct {
	Root string
	Info *LockInfo // nil if lock file is unreadable
	Path string
}

func (e *ErrLocked) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("workspace %s is locked by pid %d since %s (lock file: %s)",
			e.Root, e.Info.PID, e.Info.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("workspace %s is locked (lock file: %s)", e.Root, e.Path)
}

// RunLock provides workspace-level locking for generation runs.
type RunLock struct {
	StaleAfter time.Duration
	Now        func() time.Time
	IsPIDAlive func(pid int) bool
}

// NewRunLock returns a RunLock with defaults:
// - StaleAfter: 30m (a generation run never legitimately takes that long)
// - Now: time.Now
// - IsPIDAlive: platform impl (best-effort)
func NewRunLock() RunLock {
	return RunLock{
		StaleAfter: 30 * time.Minute,
		Now:        time.Now,
		IsPIDAlive: isPIDAlive,
	}
}

// lockPath returns the path to the lock file beside the workspace root.
func (l RunLock) lockPath(root string) string {
	return filepath.Join(filepath.Dir(root), "."+filepath.Base(root)+".lock")
}

// Lock acquires the workspace lock and returns an unlock function.
// - cmd is stored in the lock file for debugging (may be empty).
// - if already locked and not stale: returns *ErrLocked.
func (l RunLock) Lock(root string, cmd string) (unlock func() error, err error) {
	lockPath := l.lockPath(root)
	maxRetries := 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		dir := filepath.Dir(lockPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create lock directory: %w", err)
		}

		// O_EXCL for atomic acquisition
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			info := LockInfo{
				PID:       os.Getpid(),
				CreatedAt: l.Now(),
				Cmd:       cmd,
			}
			data, _ := json.Marshal(info)
			if _, writeErr := f.Write(data); writeErr != nil {
				f.Close()
				os.Remove(lockPath)
				return nil, fmt.Errorf("failed to write lock file: %w", writeErr)
			}
			if closeErr := f.Close(); closeErr != nil {
				os.Remove(lockPath)
				return nil, fmt.Errorf("failed to close lock file: %w", closeErr)
			}

			return func() error {
				err := os.Remove(lockPath)
				if err != nil && !os.IsNotExist(err) {
					return err
				}
				return nil
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		// Lock file exists - check if it's stale
		info, readErr := l.readLockInfo(lockPath)
		if readErr != nil {
			// Unreadable lock file - fall back to mtime for staleness
			stat, statErr := os.Stat(lockPath)
			if statErr != nil {
				return nil, &ErrLocked{Root: root, Path: lockPath}
			}
			age := l.Now().Sub(stat.ModTime())
			if age <= l.StaleAfter {
				return nil, &ErrLocked{Root: root, Path: lockPath}
			}
			if removeErr := os.Remove(lockPath); removeErr != nil && !os.IsNotExist(removeErr) {
				return nil, &ErrLocked{Root: root, Path: lockPath}
			}
			continue
		}

		if l.isStale(info) {
			if removeErr := os.Remove(lockPath); removeErr != nil && !os.IsNotExist(removeErr) {
				return nil, &ErrLocked{Root: root, Info: info, Path: lockPath}
			}
			continue
		}

		// Lock is held by an active process
		return nil, &ErrLocked{Root: root, Info: info, Path: lockPath}
	}

	return nil, &ErrLocked{Root: root, Path: lockPath}
}

// readLockInfo reads and parses the lock file.
func (l RunLock) readLockInfo(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// isStale returns true if the lock should be considered stale.
func (l RunLock) isStale(info *LockInfo) bool {
	if !l.IsPIDAlive(info.PID) {
		return true
	}
	if l.Now().Sub(info.CreatedAt) > l.StaleAfter {
		return true
	}
	return false
}

// isPIDAlive checks if a process with the given pid is alive.
// Signal 0 succeeds if the process exists and we have permission to signal it.
func isPIDAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means process exists but we don't have permission - treat as alive
	if errors.Is(err, syscall.EPERM) {
		return true
	}
	return false
}
