//go:build !linux

package cgroup

import (
	"github.com/pkg/errors"
)

var errNotLinux = errors.New("cgroup is only available on linux")

// DetectMountType is not available outside linux
func DetectMountType(path string) (Version, error) {
	return VersionUnknown, envErr("statfs", path, errNotLinux)
}

var killProcess = func(pid int) error {
	return errNotLinux
}
