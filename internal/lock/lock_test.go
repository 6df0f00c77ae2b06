package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireRecordsOwnerPID(t *testing.T) {
	runDir := t.TempDir()

	l, err := Acquire(runDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(runDir, lockFileName))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if !strings.Contains(string(data), fmt.Sprintf("pid=%d", os.Getpid())) {
		t.Errorf("lock file content = %q, want own pid recorded", data)
	}

	if err := l.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(runDir, lockFileName)); !os.IsNotExist(err) {
		t.Error("lock file survives Release()")
	}
}

func TestAcquireCreatesRunDir(t *testing.T) {
	runDir := filepath.Join(t.TempDir(), ".wagate", "run")

	l, err := Acquire(runDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer func() { _ = l.Release() }()

	if _, err := os.Stat(runDir); err != nil {
		t.Errorf("run dir not created: %v", err)
	}
}

func TestSecondGatewayIsRefused(t *testing.T) {
	runDir := t.TempDir()

	l, err := Acquire(runDir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer func() { _ = l.Release() }()

	_, err = Acquire(runDir)
	if err == nil {
		t.Fatal("second Acquire() succeeded while lock held")
	}

	var held *LockHeldError
	if !errors.As(err, &held) {
		t.Fatalf("err = %T (%v), want LockHeldError", err, err)
	}
	if held.PID != os.Getpid() {
		t.Errorf("held.PID = %d, want %d from the lock file", held.PID, os.Getpid())
	}
	if held.Path != filepath.Join(runDir, lockFileName) {
		t.Errorf("held.Path = %q", held.Path)
	}
}

func TestReleaseIsNilSafeAndIdempotent(t *testing.T) {
	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}

	l, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("first Release() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}
