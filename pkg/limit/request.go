package limit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyCommand is returned when no command was given
var ErrEmptyCommand = errors.New("commands is required")

// Request is the validated resource request for a single run
type Request struct {
	CPUShare float64 // number of CPUs, 0 if not requested
	Memory   Size    // zero if not requested
	Command  []string
}

// HasCPU reports whether a cpu limit was requested
func (r *Request) HasCPU() bool {
	return r.CPUShare != 0
}

// HasMemory reports whether a memory limit was requested
func (r *Request) HasMemory() bool {
	return !r.Memory.IsZero()
}

// Validate checks the request as a whole
func (r *Request) Validate() error {
	if len(r.Command) == 0 || r.Command[0] == "" {
		return ErrEmptyCommand
	}
	if r.HasCPU() {
		if err := ValidateCPUShare(r.CPUShare); err != nil {
			return err
		}
	}
	return nil
}

func (r Request) String() string {
	var sb strings.Builder
	sb.WriteString("Request[")
	if r.HasCPU() {
		fmt.Fprintf(&sb, "cpus=%v ", r.CPUShare)
	}
	if r.HasMemory() {
		fmt.Fprintf(&sb, "memory=%s(%s) ", r.Memory, r.Memory.Human())
	}
	fmt.Fprintf(&sb, "command=%q]", r.Command)
	return sb.String()
}
