package cgroup

import (
	"fmt"

	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var _ Controller = &V1{}

// V1 creates one cgroup per subsystem: <root>/<subsystem>/<app>/<pid>
type V1 struct {
	opt Options
	pid int

	// nil until the limit of that subsystem was set
	cpu    *group
	memory *group
}

// NewV1 creates a v1 controller, nothing is created on disk until a limit is set
func NewV1(o Options) *V1 {
	return &V1{opt: o.withDefaults()}
}

func (c *V1) String() string {
	return fmt.Sprintf("v1(%s/%d)[cpu=%v memory=%v]", c.opt.AppName, c.pid, c.cpu != nil, c.memory != nil)
}

// Version returns Version1
func (c *V1) Version() Version {
	return Version1
}

// BindProcess records the pid, once
func (c *V1) BindProcess(pid int) error {
	return bind(&c.pid, pid)
}

// SetCPULimit writes cpu.cfs_period_us, cpu.cfs_quota_us and cgroup.procs
func (c *V1) SetCPULimit(share float64) error {
	if c.pid == 0 {
		return ErrNotBound
	}
	quota, err := limit.CFSQuota(share)
	if err != nil {
		return &UnsupportedRequestError{Resource: CPU, Reason: "invalid share", Err: err}
	}
	g, err := c.activate(CPU, &c.cpu)
	if err != nil {
		return err
	}
	if err := g.WriteUint(cpuCfsPeriod, limit.CFSPeriod); err != nil {
		return err
	}
	if err := g.WriteUint(cpuCfsQuota, quota); err != nil {
		return err
	}
	return g.AddProc(c.pid)
}

// SetMemoryLimit writes memory.limit_in_bytes verbatim and cgroup.procs
func (c *V1) SetMemoryLimit(l string) error {
	if c.pid == 0 {
		return ErrNotBound
	}
	if _, err := limit.ParseSize(l); err != nil {
		return &UnsupportedRequestError{Resource: Memory, Reason: "invalid limit", Err: err}
	}
	g, err := c.activate(Memory, &c.memory)
	if err != nil {
		return err
	}
	if err := g.WriteFile(memoryLimitInByte, []byte(l)); err != nil {
		return err
	}
	return g.AddProc(c.pid)
}

// activate creates the subsystem directory. It is recorded as soon as it
// exists so that a later failed write still gets removed on teardown.
func (c *V1) activate(subsystem string, s **group) (*group, error) {
	if *s != nil {
		return *s, nil
	}
	g, err := createGroup(V1Dir(c.opt.Root, subsystem, c.opt.AppName, pidString(c.pid)))
	if err != nil {
		return nil, err
	}
	*s = g
	logger.Get().Debugf("cgroup: created %s", g.path)
	return g, nil
}

// Teardown removes the subsystem directories that were created. Every
// subsystem is attempted, errors are combined.
func (c *V1) Teardown() error {
	var err error
	for _, s := range []**group{&c.cpu, &c.memory} {
		if *s == nil {
			continue
		}
		if e := (*s).destroy(c.opt); e != nil {
			err = multierr.Append(err, e)
			continue
		}
		*s = nil
	}
	return err
}

func bind(dst *int, pid int) error {
	if pid <= 0 {
		return errors.Errorf("cgroup: invalid pid %d", pid)
	}
	if *dst != 0 {
		return ErrAlreadyBound
	}
	*dst = pid
	return nil
}
