package cgroup

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV1Host(t *testing.T) {
	if os.Getuid() != 0 {
		t.Skip("root privilege required")
	}
	info, err := Probe()
	if err != nil || info.RootVersion != Version1 || !info.SupportsCPUControl {
		t.Skipf("cgroup v1 with cpu control required: %v %v", info, err)
	}

	cmd := exec.Command("sleep", "0.2")
	require.NoError(t, cmd.Start())

	c := NewV1(Options{AppName: "limited-run-test", Timeout: 10 * time.Second})
	require.NoError(t, c.BindProcess(cmd.Process.Pid))
	require.NoError(t, c.SetCPULimit(0.5))
	require.NoError(t, c.SetMemoryLimit("64m"))

	dir := V1Dir(basePath, CPU, "limited-run-test", strconv.Itoa(cmd.Process.Pid))
	assert.Equal(t, "50000\n", readString(t, filepath.Join(dir, cpuCfsQuota)))
	procs, err := ReadProcesses(filepath.Join(dir, cgroupProcs))
	require.NoError(t, err)
	assert.Contains(t, procs, cmd.Process.Pid)

	require.NoError(t, cmd.Wait())
	require.NoError(t, c.Teardown())
	assert.NoDirExists(t, dir)
}

func TestKillProcess(t *testing.T) {
	cmd := exec.Command("sleep", "10")
	require.NoError(t, cmd.Start())

	require.NoError(t, killProcess(cmd.Process.Pid))
	err := cmd.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "killed")
}
