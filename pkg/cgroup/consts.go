package cgroup

import "time"

const (
	// systemd mounted cgroups
	basePath            = "/sys/fs/cgroup"
	procFilesystemsPath = "/proc/filesystems"

	cgroupProcs          = "cgroup.procs"
	cgroupControllers    = "cgroup.controllers"
	cgroupSubtreeControl = "cgroup.subtree_control"

	fsTypeV1 = "cgroup"
	fsTypeV2 = "cgroup2"

	// v1 files
	cpuCfsQuota       = "cpu.cfs_quota_us"
	cpuCfsPeriod      = "cpu.cfs_period_us"
	memoryLimitInByte = "memory.limit_in_bytes"

	// v2 files
	cpuMax    = "cpu.max"
	memoryMax = "memory.max"

	filePerm = 0644
	dirPerm  = 0755

	// DefaultAppName names the parent directory (v1) or the scope prefix (v2)
	DefaultAppName = "limited-run"

	// DefaultPollInterval is the wait between two reads of cgroup.procs on teardown
	DefaultPollInterval = time.Millisecond

	// stuckWarnAfter is how long teardown waits on cgroup.procs before warning
	stuckWarnAfter = 5 * time.Second

	CPU    = "cpu"
	Memory = "memory"
)

// Version is the cgroup API version
type Version int

// Cgroup versions, VersionUnknown when the kernel supports none
const (
	VersionUnknown Version = iota
	Version1
	Version2
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "v1"
	case Version2:
		return "v2"
	default:
		return "unknown"
	}
}
