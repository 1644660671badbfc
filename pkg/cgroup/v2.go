package cgroup

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
)

var _ Controller = &V2{}

// V2 creates a single unified cgroup: <root>/<app>-<pid>.scope
type V2 struct {
	opt Options
	pid int

	dir    *group
	cpu    bool
	memory bool
}

// NewV2 creates a v2 controller, nothing is created on disk until a limit is set
func NewV2(o Options) *V2 {
	return &V2{opt: o.withDefaults()}
}

func (c *V2) String() string {
	return fmt.Sprintf("v2(%s/%d)[cpu=%v memory=%v]", c.opt.AppName, c.pid, c.cpu, c.memory)
}

// Version returns Version2
func (c *V2) Version() Version {
	return Version2
}

// BindProcess records the pid, once
func (c *V2) BindProcess(pid int) error {
	return bind(&c.pid, pid)
}

// SetCPULimit writes "<quota> <period>" into cpu.max and the pid into cgroup.procs
func (c *V2) SetCPULimit(share float64) error {
	if c.pid == 0 {
		return ErrNotBound
	}
	if !c.opt.V2Limits {
		return &UnsupportedRequestError{Resource: CPU, Reason: "limits on a cgroup v2 root are disabled (cgroup.v2_limits)"}
	}
	quota, err := limit.CFSQuota(share)
	if err != nil {
		return &UnsupportedRequestError{Resource: CPU, Reason: "invalid share", Err: err}
	}
	g, err := c.activate(CPU)
	if err != nil {
		return err
	}
	content := strconv.FormatUint(quota, 10) + " " + strconv.FormatUint(limit.CFSPeriod, 10)
	if err := g.WriteFile(cpuMax, []byte(content)); err != nil {
		return err
	}
	return g.AddProc(c.pid)
}

// SetMemoryLimit writes the limit into memory.max verbatim and the pid into cgroup.procs
func (c *V2) SetMemoryLimit(l string) error {
	if c.pid == 0 {
		return ErrNotBound
	}
	if !c.opt.V2Limits {
		return &UnsupportedRequestError{Resource: Memory, Reason: "limits on a cgroup v2 root are disabled (cgroup.v2_limits)"}
	}
	if _, err := limit.ParseSize(l); err != nil {
		return &UnsupportedRequestError{Resource: Memory, Reason: "invalid limit", Err: err}
	}
	g, err := c.activate(Memory)
	if err != nil {
		return err
	}
	if err := g.WriteFile(memoryMax, []byte(l)); err != nil {
		return err
	}
	return g.AddProc(c.pid)
}

// activate enables the controller for children of the root and creates the
// unified directory on first use
func (c *V2) activate(controller string) (*group, error) {
	if err := c.enableController(controller); err != nil {
		return nil, err
	}
	if c.dir == nil {
		g, err := createGroup(V2Dir(c.opt.Root, c.opt.AppName, pidString(c.pid)))
		if err != nil {
			return nil, err
		}
		c.dir = g
		logger.Get().Debugf("cgroup: created %s", g.path)
	}
	switch controller {
	case CPU:
		c.cpu = true
	case Memory:
		c.memory = true
	}
	return c.dir, nil
}

// enableController ensures the root delegates the controller to its children
// (cgroup.subtree_control), otherwise cpu.max / memory.max do not appear
func (c *V2) enableController(controller string) error {
	cp := filepath.Join(c.opt.Root, cgroupControllers)
	b, err := readFile(cp)
	if err != nil {
		return controlErr("read", cp, err)
	}
	if !parseFields(b)[controller] {
		return &UnsupportedRequestError{Resource: controller, Reason: "controller not available in " + cp}
	}

	sp := filepath.Join(c.opt.Root, cgroupSubtreeControl)
	b, err = readFile(sp)
	if err != nil {
		return controlErr("read", sp, err)
	}
	if parseFields(b)[controller] {
		return nil
	}
	if err := writeFile(sp, []byte("+"+controller), filePerm); err != nil {
		return controlErr("write", sp, err)
	}
	return nil
}

// Teardown removes the unified directory if it was created
func (c *V2) Teardown() error {
	if c.dir == nil {
		return nil
	}
	if err := c.dir.destroy(c.opt); err != nil {
		return err
	}
	c.dir = nil
	c.cpu, c.memory = false, false
	return nil
}
