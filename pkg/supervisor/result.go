package supervisor

import (
	"fmt"
	"os"
	"time"
)

// Result is the outcome of a supervised run
type Result struct {
	State                // Completed or Terminated
	ExitStatus int       // exit code, or 128 + signal number if signalled
	Signal     os.Signal // nil unless the child was killed by a signal

	RunningTime time.Duration // from spawn to reap
}

func (r Result) String() string {
	if r.Signal != nil {
		return fmt.Sprintf("Result[%v Signalled(%v) %d][%v]", r.State, r.Signal, r.ExitStatus, r.RunningTime)
	}
	return fmt.Sprintf("Result[%v %d][%v]", r.State, r.ExitStatus, r.RunningTime)
}
