package cgroup

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// kernelRemove behaves like rmdir on cgroupfs: it refuses while cgroup.procs
// lists a process and otherwise drops the directory with its control files.
type kernelRemove struct {
	busy    atomic.Int32
	removed atomic.Int32
}

func installKernelRemove(t *testing.T) *kernelRemove {
	t.Helper()
	k := &kernelRemove{}
	old := removeDir
	removeDir = func(p string) error {
		procs, err := ReadProcesses(filepath.Join(p, cgroupProcs))
		if err == nil && len(procs) > 0 {
			k.busy.Add(1)
			return &os.PathError{Op: "remove", Path: p, Err: syscall.EBUSY}
		}
		if _, err := os.Stat(p); err != nil {
			return err
		}
		k.removed.Add(1)
		return os.RemoveAll(p)
	}
	t.Cleanup(func() { removeDir = old })
	return k
}

// drainAfter empties cgroup.procs in dir after d, as the kernel does some time
// after the member exited
func drainAfter(t *testing.T, dir string, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(d)
		_ = os.WriteFile(filepath.Join(dir, cgroupProcs), nil, filePerm)
	}()
	t.Cleanup(func() { <-done })
}

func drain(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cgroupProcs), nil, filePerm))
}

func readString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

func writeString(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), dirPerm))
	require.NoError(t, os.WriteFile(p, []byte(content), filePerm))
}

// snapshot lists every path below root
func snapshot(t *testing.T, root string) []string {
	t.Helper()
	var rt []string
	require.NoError(t, filepath.Walk(root, func(p string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rt = append(rt, p)
		return nil
	}))
	return rt
}

// installKillRecorder records the pids killProcess is called with. onKill
// runs after each call, e.g. to empty cgroup.procs the way the kernel does.
func installKillRecorder(t *testing.T, onKill func(killed []int)) *[]int {
	t.Helper()
	var killed []int
	old := killProcess
	killProcess = func(pid int) error {
		killed = append(killed, pid)
		if onKill != nil {
			onKill(killed)
		}
		return nil
	}
	t.Cleanup(func() { killProcess = old })
	return &killed
}
