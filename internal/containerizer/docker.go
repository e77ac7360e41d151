package containerizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"crucible/pkg/logging"
)

const dockerSubsystem = "Docker"

// DockerRuntime implements ContainerRuntime by shelling out to the docker
// CLI (or a CLI-compatible replacement such as podman).
type DockerRuntime struct {
	binary string
}

// execCommandContext is a variable to allow mocking in tests.
var execCommandContext = exec.CommandContext

// NewDockerRuntime creates a runtime driving the given CLI binary. It fails
// when the binary is missing or the daemon is not reachable.
func NewDockerRuntime(binary string) (*DockerRuntime, error) {
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("%s command not found in PATH: %w", binary, err)
	}

	cmd := execCommandContext(context.Background(), binary, "info")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s daemon not accessible: %w", binary, err)
	}

	return &DockerRuntime{binary: binary}, nil
}

// PullImage pulls the image unless it is already present locally. Pull
// output is captured rather than streamed; progress is reported by the
// caller.
func (d *DockerRuntime) PullImage(ctx context.Context, image string) error {
	checkCmd := execCommandContext(ctx, d.binary, "image", "inspect", image)
	if err := checkCmd.Run(); err == nil {
		logging.Debug(dockerSubsystem, "Image %s already exists locally", image)
		return nil
	}

	logging.Info(dockerSubsystem, "Pulling image %s, this may take a few minutes", image)
	pullCmd := execCommandContext(ctx, d.binary, "pull", image)
	output, err := pullCmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w\nOutput: %s", image, err, string(output))
	}

	return nil
}

// CreateContainer creates a container and returns its ID.
func (d *DockerRuntime) CreateContainer(ctx context.Context, config ContainerConfig) (string, error) {
	args := []string{"create", "--name", config.Name}

	if config.Hostname != "" {
		args = append(args, "--hostname", config.Hostname)
	}
	if config.WorkingDir != "" {
		args = append(args, "--workdir", config.WorkingDir)
	}
	for _, env := range config.Env {
		args = append(args, "-e", env)
	}
	for _, bind := range config.Binds {
		args = append(args, "-v", bind)
	}
	for _, mount := range config.Tmpfs {
		args = append(args, "--tmpfs", mount)
	}
	if config.Privileged {
		args = append(args, "--privileged")
	}
	for _, opt := range config.SecurityOpt {
		args = append(args, "--security-opt", opt)
	}

	args = append(args, config.Image)

	logging.Debug(dockerSubsystem, "Creating container: %s %s", d.binary, strings.Join(args, " "))

	cmd := execCommandContext(ctx, d.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w\nOutput: %s", err, string(output))
	}

	containerID := strings.TrimSpace(string(output))
	logging.Info(dockerSubsystem, "Created container %s with ID %s", config.Name, shortID(containerID))

	return containerID, nil
}

// StartContainer starts a created container.
func (d *DockerRuntime) StartContainer(ctx context.Context, containerID string) error {
	logging.Info(dockerSubsystem, "Starting container %s", shortID(containerID))

	cmd := execCommandContext(ctx, d.binary, "start", containerID)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to start container %s: %w\nOutput: %s",
			shortID(containerID), err, string(output))
	}

	return nil
}

// Exec runs the command inside the container through a bash session,
// streaming combined output to the given writer. The command's exit code is
// returned; an error indicates a transport failure (daemon gone, context
// cancelled), not a failing command.
func (d *DockerRuntime) Exec(ctx context.Context, containerID, command string, output io.Writer) (int, error) {
	cmd := execCommandContext(ctx, d.binary, "exec", containerID, "bash", "-c", command)
	cmd.Stdout = output
	cmd.Stderr = output

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// docker exec propagates the in-container command's exit code.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return exitErr.ExitCode(), nil
	}
	if ctx.Err() != nil {
		return 0, fmt.Errorf("command interrupted: %w", ctx.Err())
	}
	return 0, fmt.Errorf("failed to exec in container %s: %w", shortID(containerID), err)
}

// StopContainer stops a running container.
func (d *DockerRuntime) StopContainer(ctx context.Context, containerID string) error {
	logging.Info(dockerSubsystem, "Stopping container %s", shortID(containerID))

	cmd := execCommandContext(ctx, d.binary, "stop", containerID)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", shortID(containerID), err)
	}

	return nil
}

// RemoveContainer removes a container, forcing removal when still running.
func (d *DockerRuntime) RemoveContainer(ctx context.Context, containerID string) error {
	logging.Debug(dockerSubsystem, "Removing container %s", shortID(containerID))

	cmd := execCommandContext(ctx, d.binary, "rm", "-f", containerID)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", shortID(containerID), err)
	}

	return nil
}

func shortID(containerID string) string {
	if len(containerID) > 12 {
		return containerID[:12]
	}
	return containerID
}
