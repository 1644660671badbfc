package cgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcesses(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		expect []int
	}{
		{"Empty", "", nil},
		{"Newline", "\n", nil},
		{"Single", "42\n", []int{42}},
		{"Many", "1\n20\n\n300\n", []int{1, 20, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			procs, err := parseProcesses([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, procs)
		})
	}

	_, err := parseProcesses([]byte("12\nabc\n"))
	assert.Error(t, err)
}

func TestParseFields(t *testing.T) {
	m := parseFields([]byte("cpuset cpu io memory pids\n"))
	assert.True(t, m[CPU])
	assert.True(t, m[Memory])
	assert.False(t, m["hugetlb"])
	assert.Empty(t, parseFields(nil))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/sys/fs/cgroup/cpu/limited-run/1234", V1Dir("/sys/fs/cgroup", CPU, "limited-run", "1234"))
	assert.Equal(t, "/sys/fs/cgroup/memory/limited-run/1234", V1Dir("/sys/fs/cgroup", Memory, "limited-run", "1234"))
	assert.Equal(t, "/sys/fs/cgroup/limited-run-1234.scope", V2Dir("/sys/fs/cgroup", "limited-run", "1234"))
}
