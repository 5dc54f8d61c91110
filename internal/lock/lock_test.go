package lock

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLock() RunLock {
	return RunLock{
		StaleAfter: 30 * time.Minute,
		Now:        time.Now,
		IsPIDAlive: func(int) bool { return true },
	}
}

func TestLockAcquireRelease(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	l := testLock()

	unlock, err := l.Lock(root, "generate")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	lockPath := filepath.Join(filepath.Dir(root), ".game.lock")
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file not created: %v", err)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("lock file not removed on unlock")
	}
}

func TestLockHeldByLiveProcess(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	l := testLock()

	unlock, err := l.Lock(root, "generate")
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer unlock()

	_, err = l.Lock(root, "generate")
	if err == nil {
		t.Fatal("second lock should fail")
	}
	if _, ok := err.(*ErrLocked); !ok {
		t.Errorf("expected *ErrLocked, got %T", err)
	}
}

func TestLockStealsStaleLock(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")

	// Lock held by a dead process.
	dead := testLock()
	dead.IsPIDAlive = func(int) bool { return false }
	held := testLock()
	if _, err := held.Lock(root, "generate"); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	unlock, err := dead.Lock(root, "generate")
	if err != nil {
		t.Fatalf("stale lock not stolen: %v", err)
	}
	unlock()
}

func TestLockStealsExpiredLock(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")

	held := testLock()
	held.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	if _, err := held.Lock(root, "generate"); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	l := testLock()
	unlock, err := l.Lock(root, "generate")
	if err != nil {
		t.Fatalf("expired lock not stolen: %v", err)
	}
	unlock()
}

func TestLockRecordsCommand(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	l := testLock()

	unlock, err := l.Lock(root, "generate")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	data, err := os.ReadFile(filepath.Join(filepath.Dir(root), ".game.lock"))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("parse lock file: %v", err)
	}
	if info.Cmd != "generate" {
		t.Errorf("cmd = %q", info.Cmd)
	}
	if info.PID != os.Getpid() {
		t.Errorf("pid = %d, want %d", info.PID, os.Getpid())
	}
}
