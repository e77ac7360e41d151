package containerizer

import "fmt"

// CreationError indicates that the execution environment could not be
// created: the daemon is unreachable, the image is unavailable, or the
// container failed to create or start. It always happens before any job
// executed, so no teardown is needed.
type CreationError struct {
	Image   string
	Message string
	Err     error
}

func (e *CreationError) Error() string {
	if e.Image != "" {
		return fmt.Sprintf("cannot create container from %s: %s", e.Image, e.Message)
	}
	return fmt.Sprintf("cannot create container: %s", e.Message)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// ExecError reports a command that completed inside the container with a
// non-zero exit code.
type ExecError struct {
	Command  string
	ExitCode int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q failed (exit code %d)", e.Command, e.ExitCode)
}
