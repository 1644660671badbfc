package cgroup

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SystemInfo describes the cgroup support of the running host
type SystemInfo struct {
	SupportsV1 bool
	SupportsV2 bool

	// RootVersion is the version governing /sys/fs/cgroup, only meaningful
	// if one of SupportsV1 / SupportsV2 is set
	RootVersion Version

	SupportsCPUControl bool
}

func (i SystemInfo) String() string {
	return fmt.Sprintf("SystemInfo[v1=%v v2=%v root=%v cpu=%v]", i.SupportsV1, i.SupportsV2, i.RootVersion, i.SupportsCPUControl)
}

// Prober inspects the host. Zero values fall back to the systemd default paths.
type Prober struct {
	FilesystemsPath string // /proc/filesystems
	Root            string // /sys/fs/cgroup
	V1CPURoot       string // <Root>/cpu
}

// Probe inspects the running host with the default paths
func Probe() (SystemInfo, error) {
	return (&Prober{}).Probe()
}

// Probe reports the supported cgroup versions, the root hierarchy version and
// whether the cpu controller is usable. All errors are *EnvironmentError.
func (p *Prober) Probe() (SystemInfo, error) {
	var (
		info SystemInfo
		err  error
	)
	if info.SupportsV1, info.SupportsV2, err = p.supportedVersions(); err != nil {
		return SystemInfo{}, err
	}

	if info.SupportsV1 || info.SupportsV2 {
		if info.RootVersion, err = p.rootVersion(); err != nil {
			return SystemInfo{}, err
		}
	}

	if info.SupportsCPUControl, err = p.supportsCPUControl(info.RootVersion); err != nil {
		return SystemInfo{}, err
	}
	return info, nil
}

func (p *Prober) root() string {
	if p.Root != "" {
		return p.Root
	}
	return basePath
}

// supportedVersions reads the filesystem types registered by the kernel
func (p *Prober) supportedVersions() (v1, v2 bool, err error) {
	fp := p.FilesystemsPath
	if fp == "" {
		fp = procFilesystemsPath
	}
	b, err := readFile(fp)
	if err != nil {
		return false, false, envErr("read", fp, err)
	}

	// format: [nodev]\t<fstype>
	s := bufio.NewScanner(bytes.NewReader(b))
	for s.Scan() {
		f := strings.Fields(s.Text())
		if len(f) == 0 {
			continue
		}
		switch f[len(f)-1] {
		case fsTypeV1:
			v1 = true
		case fsTypeV2:
			v2 = true
		}
	}
	if err := s.Err(); err != nil {
		return false, false, envErr("read", fp, err)
	}
	return v1, v2, nil
}

// rootVersion distinguishes the mounted hierarchy from what the kernel was built with
func (p *Prober) rootVersion() (Version, error) {
	root := p.root()
	ok, err := hasEntry(root, cgroupControllers)
	if err != nil {
		return VersionUnknown, envErr("list", root, err)
	}
	if ok {
		return Version2, nil
	}
	return Version1, nil
}

func (p *Prober) supportsCPUControl(v Version) (bool, error) {
	switch v {
	case Version1:
		dir := p.V1CPURoot
		if dir == "" {
			dir = filepath.Join(p.root(), CPU)
		}
		ok, err := hasEntry(dir, cpuCfsQuota)
		if err != nil {
			return false, envErr("list", dir, err)
		}
		return ok, nil
	case Version2:
		return true, nil
	default:
		return false, nil
	}
}
