package cgroup

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
)

// group is the accessor for a single cgroup directory with given path
type group struct {
	path string
}

// createGroup makes the directory including missing parents
func createGroup(p string) (*group, error) {
	if err := os.MkdirAll(p, dirPerm); err != nil {
		return nil, controlErr("create", p, err)
	}
	return &group{path: p}, nil
}

// WriteFile writes cgroup file and handles potential EINTR error while writes to
// the slow device (cgroup)
func (g *group) WriteFile(name string, content []byte) error {
	p := filepath.Join(g.path, name)
	if err := writeFile(p, content, filePerm); err != nil {
		return controlErr("write", p, err)
	}
	return nil
}

// WriteUint writes uint64 into given file
func (g *group) WriteUint(name string, i uint64) error {
	return g.WriteFile(name, []byte(strconv.FormatUint(i, 10)))
}

// AddProc writes the pid into cgroup.procs
func (g *group) AddProc(pid int) error {
	return g.WriteFile(cgroupProcs, []byte(strconv.Itoa(pid)))
}

// Processes lists all process pid from the cgroup
func (g *group) Processes() ([]int, error) {
	return ReadProcesses(filepath.Join(g.path, cgroupProcs))
}

// waitEmpty polls cgroup.procs until it lists no process. The kernel drops an
// exited process from the list asynchronously, so a non-empty read right
// after exit is expected. With KillStrays every listed pid gets SIGKILL once,
// the supervised process is already reaped so these are its descendants.
func (g *group) waitEmpty(o Options) error {
	p := filepath.Join(g.path, cgroupProcs)
	start := time.Now()
	killed := make(map[int]bool)
	warned := false
	for {
		procs, err := g.Processes()
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return controlErr("read", p, err)
		}
		if len(procs) == 0 {
			return nil
		}
		logger.Get().Debugf("cgroup: waiting for %s to drain: %v", p, procs)
		if o.KillStrays {
			for _, pid := range procs {
				if killed[pid] {
					continue
				}
				killed[pid] = true
				if err := killProcess(pid); err != nil {
					logger.Get().Warnf("cgroup: kill %d in %s: %v", pid, p, err)
				}
			}
		}
		if !warned && time.Since(start) > stuckWarnAfter {
			warned = true
			logger.Get().Warnf("cgroup: %s still lists %v after %v", p, procs, stuckWarnAfter)
		}
		if o.Timeout > 0 && time.Since(start) > o.Timeout {
			return controlErr("wait", p, ErrTeardownTimeout)
		}
		time.Sleep(o.PollInterval)
	}
}

// destroy waits until no process is listed and removes the directory
func (g *group) destroy(o Options) error {
	if err := g.waitEmpty(o); err != nil {
		return err
	}
	if err := removeDir(g.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return controlErr("remove", g.path, err)
	}
	logger.Get().Debugf("cgroup: removed %s", g.path)
	return nil
}
