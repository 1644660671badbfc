package cgroup

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotBound is returned when a limit is set before BindProcess
	ErrNotBound = errors.New("no process bound to the cgroup")

	// ErrAlreadyBound is returned when BindProcess is called twice
	ErrAlreadyBound = errors.New("process already bound to the cgroup")

	// ErrTeardownTimeout is returned when cgroup.procs did not drain in time
	ErrTeardownTimeout = errors.New("timed out waiting for cgroup.procs to become empty")
)

// EnvironmentError means the cgroup support of the host cannot be determined.
// It is fatal and happens before anything is spawned.
type EnvironmentError struct {
	Op   string
	Path string
	Err  error
}

func (e *EnvironmentError) Error() string {
	if e.Path == "" {
		return "cgroup environment: " + e.Op + ": " + e.Err.Error()
	}
	return "cgroup environment: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// UnsupportedRequestError means a limit was requested that the host (or the
// current configuration) cannot enforce.
type UnsupportedRequestError struct {
	Resource string
	Reason   string
	Err      error
}

func (e *UnsupportedRequestError) Error() string {
	s := "unsupported " + e.Resource + " limit: " + e.Reason
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *UnsupportedRequestError) Unwrap() error {
	return e.Err
}

// ResourceControlError is a failed create / write / remove against the cgroup filesystem
type ResourceControlError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceControlError) Error() string {
	return "cgroup: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ResourceControlError) Unwrap() error {
	return e.Err
}

func envErr(op, path string, err error) error {
	return &EnvironmentError{Op: op, Path: path, Err: err}
}

func controlErr(op, path string, err error) error {
	return &ResourceControlError{Op: op, Path: path, Err: err}
}
