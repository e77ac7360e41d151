package containerizer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"crucible/internal/config"
	"crucible/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
)

const sessionSubsystem = "Session"

// Session is the single shared container handle for the duration of a run.
// It owns the container's lifecycle: image pull, create, start, command
// execution and the final idempotent teardown.
type Session struct {
	runtime     ContainerRuntime
	containerID string
	output      io.Writer
	removed     bool
}

// NewSession pulls the configured image if needed, then creates and starts
// the container. The source tree at cfg.GitRepo is bind-mounted into the
// container's working directory; the caller's configuration is not mutated.
// Command output from Exec is streamed raw to output.
//
// Failures return a *CreationError: nothing was created that the caller
// would need to tear down.
func NewSession(ctx context.Context, runtime ContainerRuntime, cfg config.Config, output io.Writer) (*Session, error) {
	image := cfg.Container.Image

	stop := startPullSpinner(image)
	err := runtime.PullImage(ctx, image)
	stop()
	if err != nil {
		return nil, &CreationError{Image: image, Message: "image unavailable", Err: err}
	}

	binds := make([]string, 0, len(cfg.Host.Binds)+1)
	binds = append(binds, cfg.Host.Binds...)
	binds = append(binds, strings.Join([]string{cfg.GitRepo, cfg.Container.WorkingDir, "rw,Z"}, ":"))

	containerConfig := ContainerConfig{
		Name:        fmt.Sprintf("crucible-%s", uuid.New().String()),
		Image:       image,
		Hostname:    cfg.Container.Hostname,
		WorkingDir:  cfg.Container.WorkingDir,
		Env:         cfg.Container.Environment,
		Binds:       binds,
		Tmpfs:       cfg.Host.Tmpfs,
		Privileged:  cfg.Host.Privileged,
		SecurityOpt: cfg.Host.SecurityOpt,
	}

	containerID, err := runtime.CreateContainer(ctx, containerConfig)
	if err != nil {
		return nil, &CreationError{Image: image, Message: "daemon refused creation", Err: err}
	}

	if err := runtime.StartContainer(ctx, containerID); err != nil {
		// Creation succeeded, so do not leak the container.
		if rmErr := runtime.RemoveContainer(context.WithoutCancel(ctx), containerID); rmErr != nil {
			logging.Warn(sessionSubsystem, "Cannot remove half-created container: %v", rmErr)
		}
		return nil, &CreationError{Image: image, Message: "container failed to start", Err: err}
	}

	return &Session{runtime: runtime, containerID: containerID, output: output}, nil
}

// ContainerID returns the identifier of the session's container.
func (s *Session) ContainerID() string {
	return s.containerID
}

// Exec runs a fully resolved command inside the container and blocks until
// it completes. A non-zero exit code is returned as *ExecError.
func (s *Session) Exec(ctx context.Context, command string) error {
	logging.Info(sessionSubsystem, "Executing command: %s", command)

	exitCode, err := s.runtime.Exec(ctx, s.containerID, command, s.output)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return &ExecError{Command: command, ExitCode: exitCode}
	}
	return nil
}

// StopAndRemove tears the container down. It is idempotent: repeated calls,
// or calls after the container is already gone, are safe and return nil.
func (s *Session) StopAndRemove(ctx context.Context) error {
	if s.removed {
		return nil
	}
	s.removed = true

	if err := s.runtime.StopContainer(ctx, s.containerID); err != nil {
		logging.Warn(sessionSubsystem, "Cannot stop container %s: %v", s.containerID, err)
	}
	if err := s.runtime.RemoveContainer(ctx, s.containerID); err != nil {
		return fmt.Errorf("cannot remove container %s: %w", s.containerID, err)
	}
	return nil
}

// startPullSpinner shows a progress spinner while an image pull is in
// flight, but only when stdout is a terminal. The returned func stops it.
func startPullSpinner(image string) func() {
	info, err := os.Stdout.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Pulling image %s...", image)
	s.Start()
	return s.Stop
}
