// Package cgroup probes the cgroup support of the running kernel and controls
// a per-process cgroup under the systemd defined mount path
// (i.e., /sys/fs/cgroup), with v1 and v2 implementations.
//
// Controllers used:
//  cpu     (cfs quota / period, cpu.max)
//  memory  (memory.limit_in_bytes, memory.max)
//
// A controller creates its directories lazily when a limit is set, and only
// removes what it created. Removal waits for cgroup.procs to become empty
// since the kernel refuses to rmdir a cgroup with member processes.
package cgroup
