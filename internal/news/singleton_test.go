// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestTryAcquireSingletonFresh(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "run", "poller.pid")

	ok, err := TryAcquireSingleton(pidPath)
	if err != nil {
		t.Fatalf("TryAcquireSingleton() error = %v", err)
	}
	if !ok {
		t.Fatal("expected to acquire on a fresh path")
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		t.Fatalf("reading PID file: %v", err)
	}
	if got := string(data); got != strconv.Itoa(os.Getpid()) {
		t.Errorf("PID file contains %q, want own PID", got)
	}
}

func TestTryAcquireSingletonLiveHolder(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "poller.pid")
	// The test process itself is a live holder.
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := TryAcquireSingleton(pidPath)
	if err != nil {
		t.Fatalf("TryAcquireSingleton() error = %v", err)
	}
	if ok {
		t.Error("acquired despite a live holder")
	}
}

func TestTryAcquireSingletonStalePID(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "poller.pid")
	if err := os.WriteFile(pidPath, []byte("999999999"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := TryAcquireSingleton(pidPath)
	if err != nil {
		t.Fatalf("TryAcquireSingleton() error = %v", err)
	}
	if !ok {
		t.Error("expected takeover of a stale PID file")
	}
}

func TestTryAcquireSingletonGarbageFile(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "poller.pid")
	if err := os.WriteFile(pidPath, []byte("not-a-pid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := TryAcquireSingleton(pidPath)
	if err != nil {
		t.Fatalf("TryAcquireSingleton() error = %v", err)
	}
	if !ok {
		t.Error("expected takeover of a garbage PID file")
	}
}

func TestReleaseSingleton(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "poller.pid")
	if _, err := TryAcquireSingleton(pidPath); err != nil {
		t.Fatal(err)
	}

	ReleaseSingleton(pidPath)
	if _, err := os.Stat(pidPath); !os.IsNotExist(err) {
		t.Error("PID file still present after release")
	}
}
