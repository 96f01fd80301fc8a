// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package news

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// TryAcquireSingleton implements the poller's single-instance guard. It
// reads the PID file at pidPath and declines when a live process holds it;
// otherwise it writes the current process ID and reports success. Calling
// it repeatedly is always safe.
func TryAcquireSingleton(pidPath string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(pidPath), 0o755); err != nil {
		return false, fmt.Errorf("creating PID directory: %w", err)
	}

	if data, err := os.ReadFile(pidPath); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && pid > 0 && pidAlive(pid) {
			return false, nil
		}
		// Stale or garbage PID file: fall through and take over.
	}

	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(pidPath, []byte(pid), 0o644); err != nil {
		return false, fmt.Errorf("writing PID file: %w", err)
	}
	return true, nil
}

// ReleaseSingleton removes the PID file. Best effort; a leftover stale
// file is handled by the next TryAcquireSingleton.
func ReleaseSingleton(pidPath string) {
	os.Remove(pidPath)
}

// pidAlive probes a process with signal 0.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
