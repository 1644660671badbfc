// Package supervisor runs a single child process under the limits of a
// cgroup.Controller: spawn, bind, apply limits, wait, kill on interrupt and
// tear the cgroups down on every path once the child was bound.
package supervisor

import (
	"time"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/criyle/limited-run/pkg/logger"
)

// DefaultPollInterval is the wait between non-blocking status checks of the child
const DefaultPollInterval = 10 * time.Millisecond

// Options configures the supervising loop
type Options struct {
	// PollInterval between wait4 calls, default 10ms
	PollInterval time.Duration

	// V2Limits allows limits on a cgroup v2 root, matches cgroup.Options.V2Limits
	V2Limits bool
}

// Supervisor owns one controller for exactly one run
type Supervisor struct {
	ctrl  cgroup.Controller
	info  cgroup.SystemInfo
	opt   Options
	state State
	log   logger.Logger
}

// New creates a supervisor in the Created state
func New(ctrl cgroup.Controller, info cgroup.SystemInfo, opt Options) *Supervisor {
	if opt.PollInterval <= 0 {
		opt.PollInterval = DefaultPollInterval
	}
	return &Supervisor{
		ctrl: ctrl,
		info: info,
		opt:  opt,
		log:  logger.Get(),
	}
}

// State returns the current lifecycle state
func (s *Supervisor) State() State {
	return s.state
}
