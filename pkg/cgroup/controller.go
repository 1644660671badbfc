package cgroup

import (
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/cgroup_mocks.go -package mock_cgroup github.com/criyle/limited-run/pkg/cgroup Controller

// Controller controls the cgroup of a single process, including v1 and v2
// implementations. BindProcess must be called exactly once before any limit
// is set; Teardown removes whatever the limits created.
type Controller interface {
	// Version returns the cgroup version the controller writes to
	Version() Version

	// BindProcess records the controlled process id
	BindProcess(pid int) error

	// SetCPULimit sets the cfs quota for share CPUs and moves the process in
	SetCPULimit(share float64) error

	// SetMemoryLimit writes the limit string verbatim and moves the process in
	SetMemoryLimit(limit string) error

	// Teardown waits for every created cgroup to drain and removes it
	Teardown() error
}

// Options configures where and how the per-process cgroups are created
type Options struct {
	Root    string // mount point, default /sys/fs/cgroup
	AppName string // default limited-run

	// V2Limits enables limit setting on a cgroup v2 root
	V2Limits bool

	// PollInterval is the wait between reads of cgroup.procs on teardown
	PollInterval time.Duration

	// Timeout bounds the teardown wait per cgroup, 0 waits forever
	Timeout time.Duration

	// KillStrays sends SIGKILL to processes still listed in cgroup.procs on
	// teardown, i.e. descendants that outlived the supervised process
	KillStrays bool
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = basePath
	}
	if o.AppName == "" {
		o.AppName = DefaultAppName
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Dirs lists the directories a controller of version v would create for the
// process id (or placeholder) id
func (o Options) Dirs(v Version, id string, cpu, memory bool) []string {
	o = o.withDefaults()
	var rt []string
	switch v {
	case Version1:
		if cpu {
			rt = append(rt, V1Dir(o.Root, CPU, o.AppName, id))
		}
		if memory {
			rt = append(rt, V1Dir(o.Root, Memory, o.AppName, id))
		}
	case Version2:
		if cpu || memory {
			rt = append(rt, V2Dir(o.Root, o.AppName, id))
		}
	}
	return rt
}

// New selects the controller by the version of the root hierarchy
func New(info SystemInfo, o Options) (Controller, error) {
	switch info.RootVersion {
	case Version1:
		return NewV1(o), nil
	case Version2:
		return NewV2(o), nil
	}
	return nil, envErr("select controller", "", fmt.Errorf("unexpected cgroup root version %v (%v)", info.RootVersion, info))
}

// CheckRequest verifies that the requested limits can be enforced on the host
// before anything is spawned
func CheckRequest(info SystemInfo, v2Limits, cpu, memory bool) error {
	if cpu && !info.SupportsCPUControl {
		return &UnsupportedRequestError{Resource: CPU, Reason: "system cgroup does not support cpu control"}
	}
	if info.RootVersion == Version2 && !v2Limits {
		for _, r := range []struct {
			requested bool
			name      string
		}{
			{cpu, CPU},
			{memory, Memory},
		} {
			if r.requested {
				return &UnsupportedRequestError{Resource: r.name, Reason: "limits on a cgroup v2 root are disabled (cgroup.v2_limits)"}
			}
		}
	}
	return nil
}
