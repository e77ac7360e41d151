package runner

import "fmt"

// StepError reports the first step whose command failed. It carries the job
// name, step name, command and exit code so that the failure can be diagnosed
// from the error alone; the process exit code mirrors the command's.
type StepError struct {
	Job      string
	Step     string
	Command  string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("job %q step %q: command %q failed (exit code %d)",
		e.Job, e.Step, e.Command, e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
