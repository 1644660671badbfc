package cgroup

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// killProcess sends SIGKILL, a process that is already gone is not an error
var killProcess = func(pid int) error {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return err
	}
	return nil
}

// DetectMountType reports the cgroup version mounted at path by its filesystem
// magic. A cgroup2 mount is v2; tmpfs (systemd v1 / hybrid layout) or a cgroup
// mount is v1. It is a diagnostic only, Probe decides by cgroup.controllers.
func DetectMountType(path string) (Version, error) {
	if path == "" {
		path = basePath
	}
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return VersionUnknown, envErr("statfs", path, err)
	}
	switch st.Type {
	case unix.CGROUP2_SUPER_MAGIC:
		return Version2, nil
	case unix.CGROUP_SUPER_MAGIC, unix.TMPFS_MAGIC:
		return Version1, nil
	}
	return VersionUnknown, nil
}
