package supervisor

import (
	"fmt"
)

// SpawnError means the child process could not be started. Nothing was bound
// so there is nothing to tear down.
type SpawnError struct {
	Command []string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
