package cgroup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPid = 1234

func newTestV1(t *testing.T, timeout time.Duration) (*V1, string) {
	t.Helper()
	root := t.TempDir()
	c := NewV1(Options{Root: root, PollInterval: time.Millisecond, Timeout: timeout})
	require.NoError(t, c.BindProcess(testPid))
	return c, root
}

func TestV1CPULimit(t *testing.T) {
	k := installKernelRemove(t)
	c, root := newTestV1(t, 5*time.Second)

	require.NoError(t, c.SetCPULimit(0.5))

	dir := V1Dir(root, CPU, DefaultAppName, "1234")
	assert.Equal(t, "50000", readString(t, filepath.Join(dir, cpuCfsQuota)))
	assert.Equal(t, "100000", readString(t, filepath.Join(dir, cpuCfsPeriod)))
	assert.Equal(t, "1234", readString(t, filepath.Join(dir, cgroupProcs)))
	assert.NoDirExists(t, filepath.Join(root, Memory))

	drainAfter(t, dir, 20*time.Millisecond)
	require.NoError(t, c.Teardown())
	assert.NoDirExists(t, dir)
	assert.DirExists(t, filepath.Join(root, CPU, DefaultAppName))
	assert.EqualValues(t, 0, k.busy.Load())
	assert.EqualValues(t, 1, k.removed.Load())
}

func TestV1CPUQuotaRounding(t *testing.T) {
	installKernelRemove(t)
	for share, quota := range map[float64]string{
		1:        "100000",
		2.5:      "250000",
		0.011:    "1100",
		0.33333:  "33333",
		0.123456: "12346",
	} {
		c, root := newTestV1(t, time.Second)
		require.NoError(t, c.SetCPULimit(share))
		dir := V1Dir(root, CPU, DefaultAppName, "1234")
		assert.Equal(t, quota, readString(t, filepath.Join(dir, cpuCfsQuota)), "share %v", share)
		drain(t, dir)
		require.NoError(t, c.Teardown())
	}
}

func TestV1MemoryLimit(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, time.Second)

	require.NoError(t, c.SetMemoryLimit("128m"))

	dir := V1Dir(root, Memory, DefaultAppName, "1234")
	assert.Equal(t, "128m", readString(t, filepath.Join(dir, memoryLimitInByte)))
	assert.Equal(t, "1234", readString(t, filepath.Join(dir, cgroupProcs)))
	assert.NoDirExists(t, filepath.Join(root, CPU))

	drain(t, dir)
	require.NoError(t, c.Teardown())
	assert.NoDirExists(t, dir)
}

func TestV1BothLimits(t *testing.T) {
	k := installKernelRemove(t)
	c, root := newTestV1(t, 5*time.Second)

	require.NoError(t, c.SetCPULimit(1.5))
	require.NoError(t, c.SetMemoryLimit("1G"))
	assert.Equal(t, "v1(limited-run/1234)[cpu=true memory=true]", c.String())

	cpuDir := V1Dir(root, CPU, DefaultAppName, "1234")
	memDir := V1Dir(root, Memory, DefaultAppName, "1234")
	assert.Equal(t, "150000", readString(t, filepath.Join(cpuDir, cpuCfsQuota)))
	assert.Equal(t, "1G", readString(t, filepath.Join(memDir, memoryLimitInByte)))

	drainAfter(t, cpuDir, 10*time.Millisecond)
	drainAfter(t, memDir, 30*time.Millisecond)
	require.NoError(t, c.Teardown())
	assert.NoDirExists(t, cpuDir)
	assert.NoDirExists(t, memDir)
	assert.EqualValues(t, 0, k.busy.Load())
	assert.EqualValues(t, 2, k.removed.Load())
}

func TestV1InvalidMemoryLimit(t *testing.T) {
	installKernelRemove(t)
	for _, l := range []string{"", "128", "m", "1.5g", "128mb", "12t", "-1m", " 1m"} {
		c, root := newTestV1(t, time.Second)
		before := snapshot(t, root)

		err := c.SetMemoryLimit(l)
		var unsupported *UnsupportedRequestError
		require.True(t, errors.As(err, &unsupported), "limit %q: %v", l, err)
		assert.Equal(t, Memory, unsupported.Resource)
		assert.Equal(t, before, snapshot(t, root))
		require.NoError(t, c.Teardown())
	}
}

func TestV1InvalidCPUShare(t *testing.T) {
	installKernelRemove(t)
	for _, s := range []float64{0, -1, 0.001} {
		c, root := newTestV1(t, time.Second)
		before := snapshot(t, root)

		err := c.SetCPULimit(s)
		var unsupported *UnsupportedRequestError
		require.True(t, errors.As(err, &unsupported), "share %v: %v", s, err)
		assert.Equal(t, before, snapshot(t, root))
	}
}

func TestV1Binding(t *testing.T) {
	c := NewV1(Options{Root: t.TempDir()})
	assert.Equal(t, Version1, c.Version())

	assert.ErrorIs(t, c.SetCPULimit(1), ErrNotBound)
	assert.ErrorIs(t, c.SetMemoryLimit("1m"), ErrNotBound)

	assert.Error(t, c.BindProcess(0))
	assert.Error(t, c.BindProcess(-3))
	require.NoError(t, c.BindProcess(testPid))
	assert.ErrorIs(t, c.BindProcess(testPid+1), ErrAlreadyBound)
}

func TestV1TeardownWithoutLimits(t *testing.T) {
	k := installKernelRemove(t)
	c, root := newTestV1(t, time.Second)
	before := snapshot(t, root)

	require.NoError(t, c.Teardown())
	assert.Equal(t, before, snapshot(t, root))
	assert.EqualValues(t, 0, k.removed.Load())
}

func TestV1TeardownTimeout(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, 20*time.Millisecond)
	require.NoError(t, c.SetMemoryLimit("64k"))

	err := c.Teardown()
	assert.ErrorIs(t, err, ErrTeardownTimeout)
	var controlErr *ResourceControlError
	require.True(t, errors.As(err, &controlErr))
	assert.Equal(t, "wait", controlErr.Op)
	assert.DirExists(t, V1Dir(root, Memory, DefaultAppName, "1234"))
}

func TestV1TeardownContinuesAfterFailure(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, 20*time.Millisecond)
	require.NoError(t, c.SetCPULimit(1))
	require.NoError(t, c.SetMemoryLimit("2M"))

	cpuDir := V1Dir(root, CPU, DefaultAppName, "1234")
	memDir := V1Dir(root, Memory, DefaultAppName, "1234")
	drain(t, memDir)

	assert.ErrorIs(t, c.Teardown(), ErrTeardownTimeout)
	assert.DirExists(t, cpuDir)
	assert.NoDirExists(t, memDir)

	drain(t, cpuDir)
	require.NoError(t, c.Teardown())
	assert.NoDirExists(t, cpuDir)
}

func TestV1CreateFailure(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, time.Second)
	// a plain file where the application directory should be
	writeString(t, filepath.Join(root, CPU, DefaultAppName), "")

	err := c.SetCPULimit(1)
	var controlErr *ResourceControlError
	require.True(t, errors.As(err, &controlErr), "got %v", err)
	assert.Equal(t, "create", controlErr.Op)
	require.NoError(t, c.Teardown())
}

func TestV1TeardownMissingDirectory(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, time.Second)
	require.NoError(t, c.SetMemoryLimit("1k"))
	dir := V1Dir(root, Memory, DefaultAppName, "1234")
	require.NoError(t, os.RemoveAll(dir))

	require.NoError(t, c.Teardown())
}

func TestV1TeardownKillsStrays(t *testing.T) {
	installKernelRemove(t)
	root := t.TempDir()
	c := NewV1(Options{Root: root, PollInterval: time.Millisecond, Timeout: 5 * time.Second, KillStrays: true})
	require.NoError(t, c.BindProcess(testPid))
	require.NoError(t, c.SetMemoryLimit("1m"))

	// 5678 was forked by the bound process and outlived it
	dir := V1Dir(root, Memory, DefaultAppName, "1234")
	writeString(t, filepath.Join(dir, cgroupProcs), "1234\n5678\n")
	killed := installKillRecorder(t, func(killed []int) {
		if len(killed) == 2 {
			drain(t, dir)
		}
	})

	require.NoError(t, c.Teardown())
	assert.Equal(t, []int{1234, 5678}, *killed)
	assert.NoDirExists(t, dir)
}

func TestV1TeardownKillsStraysOnce(t *testing.T) {
	installKernelRemove(t)
	root := t.TempDir()
	c := NewV1(Options{Root: root, PollInterval: time.Millisecond, Timeout: 30 * time.Millisecond, KillStrays: true})
	require.NoError(t, c.BindProcess(testPid))
	require.NoError(t, c.SetCPULimit(1))
	killed := installKillRecorder(t, nil)

	assert.ErrorIs(t, c.Teardown(), ErrTeardownTimeout)
	assert.Equal(t, []int{testPid}, *killed)
}

func TestV1TeardownLeavesStraysByDefault(t *testing.T) {
	installKernelRemove(t)
	c, root := newTestV1(t, 20*time.Millisecond)
	require.NoError(t, c.SetMemoryLimit("1m"))
	killed := installKillRecorder(t, nil)

	assert.ErrorIs(t, c.Teardown(), ErrTeardownTimeout)
	assert.Empty(t, *killed)
	assert.DirExists(t, V1Dir(root, Memory, DefaultAppName, "1234"))
}
