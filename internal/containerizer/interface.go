package containerizer

import (
	"context"
	"io"
)

// ContainerRuntime defines the interface for container runtime operations.
// The runner never assumes anything about the runtime's internal retry or
// network behaviour; it is an opaque collaborator.
type ContainerRuntime interface {
	// PullImage pulls a container image if not already present locally.
	PullImage(ctx context.Context, image string) error

	// CreateContainer creates a container and returns its ID.
	CreateContainer(ctx context.Context, config ContainerConfig) (string, error)

	// StartContainer starts a created container.
	StartContainer(ctx context.Context, containerID string) error

	// Exec runs a command inside the container, streaming combined
	// stdout/stderr to output, and returns the command's exit code.
	// A non-zero exit code is reported through the code, not the error;
	// the error is reserved for transport-level failures.
	Exec(ctx context.Context, containerID, command string, output io.Writer) (int, error)

	// StopContainer stops a running container.
	StopContainer(ctx context.Context, containerID string) error

	// RemoveContainer removes a container, stopped or not.
	RemoveContainer(ctx context.Context, containerID string) error
}

// ContainerConfig holds the settings for creating a container.
type ContainerConfig struct {
	Name        string   // Container name
	Image       string   // Container image
	Hostname    string   // Hostname inside the container
	WorkingDir  string   // Working directory inside the container
	Env         []string // Environment variables (KEY=value)
	Binds       []string // Volume mounts (host:container[:opts])
	Tmpfs       []string // Tmpfs mount points
	Privileged  bool     // Run privileged
	SecurityOpt []string // Security options
}
