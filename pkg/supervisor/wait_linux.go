package supervisor

import (
	"context"
	"os"
	"time"

	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type waitStatus unix.WaitStatus

// exit converts the wait status into the shell exit code convention
func (ws waitStatus) exit() (int, os.Signal) {
	s := unix.WaitStatus(ws)
	switch {
	case s.Exited():
		return s.ExitStatus(), nil
	case s.Signaled():
		return 128 + int(s.Signal()), s.Signal()
	}
	return -1, nil
}

// wait polls the child with WNOHANG until it exits or ctx is done.
// Interrupt is only observed between status checks.
func (s *Supervisor) wait(ctx context.Context, pid int) (waitStatus, bool, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return 0, false, errors.Wrapf(err, "wait4 %d", pid)
		case wpid == pid:
			return waitStatus(ws), true, nil
		}
		if ctx.Err() != nil {
			return 0, false, nil
		}
		time.Sleep(s.opt.PollInterval)
	}
}

// kill sends SIGKILL and reaps the child so that it leaves cgroup.procs.
// A failed kill is not escalated, the blocking wait still reaps.
func (s *Supervisor) kill(log logger.Logger, pid int) waitStatus {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		log.Warnf("kill %d: %v", pid, err)
	}
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			log.Warnf("reap %d: %v", pid, err)
		}
		return waitStatus(ws)
	}
}
