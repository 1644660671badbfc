package supervisor

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
)

// Run spawns the command of req, confines it and waits for it. Cancelling ctx
// kills the child. Errors before the spawn leave the system untouched, errors
// after it are returned only once the child was reaped and the cgroups were
// torn down.
func (s *Supervisor) Run(ctx context.Context, req limit.Request) (Result, error) {
	if s.state != StateCreated {
		return Result{}, errors.Errorf("supervisor: run called in state %v", s.state)
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := cgroup.CheckRequest(s.info, s.opt.V2Limits, req.HasCPU(), req.HasMemory()); err != nil {
		return Result{}, err
	}

	cmd := exec.Command(req.Command[0], req.Command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, &SpawnError{Command: req.Command, Err: err}
	}
	pid := cmd.Process.Pid
	s.state = StateRunning
	log := s.log.WithFields(logger.Fields{"pid": pid})
	log.Infof("spawned %v", req)

	defer func() {
		if err := s.ctrl.Teardown(); err != nil {
			log.Warnf("cgroup teardown failed: %v", err)
		}
		s.state = StateCleanedUp
		_ = cmd.Process.Release()
	}()

	if err := s.apply(pid, req); err != nil {
		log.Errorf("failed to apply limits: %v", err)
		ws := s.kill(log, pid)
		return s.result(StateTerminated, ws, start), err
	}

	ws, exited, err := s.wait(ctx, pid)
	if err != nil {
		return s.result(StateTerminated, s.kill(log, pid), start), err
	}
	if !exited {
		log.Warn("interrupted, killing child")
		ws = s.kill(log, pid)
		return s.result(StateTerminated, ws, start), nil
	}

	r := s.result(StateCompleted, ws, start)
	log.Infof("child exited: %v", r)
	return r, nil
}

// apply binds the pid and sets the requested limits, cpu first
func (s *Supervisor) apply(pid int, req limit.Request) error {
	if err := s.ctrl.BindProcess(pid); err != nil {
		return errors.Wrapf(err, "bind %d", pid)
	}
	if req.HasCPU() {
		if err := s.ctrl.SetCPULimit(req.CPUShare); err != nil {
			return err
		}
	}
	if req.HasMemory() {
		if err := s.ctrl.SetMemoryLimit(req.Memory.String()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Supervisor) result(st State, ws waitStatus, start time.Time) Result {
	s.state = st
	r := Result{
		State:       st,
		RunningTime: time.Since(start),
	}
	r.ExitStatus, r.Signal = ws.exit()
	return r
}
