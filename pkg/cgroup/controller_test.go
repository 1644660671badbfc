package cgroup

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New(SystemInfo{SupportsV1: true, RootVersion: Version1}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &V1{}, c)
	assert.Equal(t, Version1, c.Version())

	c, err = New(SystemInfo{SupportsV1: true, SupportsV2: true, RootVersion: Version2}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &V2{}, c)

	_, err = New(SystemInfo{}, Options{})
	var envErr *EnvironmentError
	assert.True(t, errors.As(err, &envErr))
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, "/sys/fs/cgroup", o.Root)
	assert.Equal(t, "limited-run", o.AppName)
	assert.Equal(t, time.Millisecond, o.PollInterval)
	assert.Zero(t, o.Timeout)

	o = Options{Root: "/tmp/cg", AppName: "x", PollInterval: time.Second}.withDefaults()
	assert.Equal(t, Options{Root: "/tmp/cg", AppName: "x", PollInterval: time.Second}, o)
}

func TestOptionsDirs(t *testing.T) {
	o := Options{}
	assert.Equal(t, []string{
		"/sys/fs/cgroup/cpu/limited-run/<pid>",
		"/sys/fs/cgroup/memory/limited-run/<pid>",
	}, o.Dirs(Version1, "<pid>", true, true))
	assert.Equal(t, []string{"/sys/fs/cgroup/memory/limited-run/7"}, o.Dirs(Version1, "7", false, true))
	assert.Equal(t, []string{"/sys/fs/cgroup/limited-run-7.scope"}, o.Dirs(Version2, "7", true, true))
	assert.Empty(t, o.Dirs(Version2, "7", false, false))
	assert.Empty(t, o.Dirs(VersionUnknown, "7", true, true))
}

func TestCheckRequest(t *testing.T) {
	v1 := SystemInfo{SupportsV1: true, RootVersion: Version1, SupportsCPUControl: true}
	v1NoCPU := SystemInfo{SupportsV1: true, RootVersion: Version1}
	v2 := SystemInfo{SupportsV2: true, RootVersion: Version2, SupportsCPUControl: true}

	tests := []struct {
		name        string
		info        SystemInfo
		v2Limits    bool
		cpu, memory bool
		resource    string // empty if accepted
	}{
		{"V1Both", v1, false, true, true, ""},
		{"V1None", v1NoCPU, false, false, false, ""},
		{"V1MemoryWithoutCFS", v1NoCPU, false, false, true, ""},
		{"V1CPUWithoutCFS", v1NoCPU, false, true, false, CPU},
		{"V2NoLimits", v2, false, false, false, ""},
		{"V2CPUDisabled", v2, false, true, false, CPU},
		{"V2MemoryDisabled", v2, false, false, true, Memory},
		{"V2Enabled", v2, true, true, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequest(tt.info, tt.v2Limits, tt.cpu, tt.memory)
			if tt.resource == "" {
				assert.NoError(t, err)
				return
			}
			var unsupported *UnsupportedRequestError
			require.True(t, errors.As(err, &unsupported), "got %v", err)
			assert.Equal(t, tt.resource, unsupported.Resource)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := controlErr("write", "/sys/fs/cgroup/cpu/x/cpu.cfs_quota_us", errors.New("permission denied"))
	assert.Equal(t, "cgroup: write /sys/fs/cgroup/cpu/x/cpu.cfs_quota_us: permission denied", err.Error())

	err = envErr("read", "/proc/filesystems", errors.New("no such file or directory"))
	assert.Equal(t, "cgroup environment: read /proc/filesystems: no such file or directory", err.Error())

	err = &UnsupportedRequestError{Resource: CPU, Reason: "system cgroup does not support cpu control"}
	assert.Equal(t, "unsupported cpu limit: system cgroup does not support cpu control", err.Error())
}
