package containerizer

import (
	"fmt"
	"strings"
)

// RuntimeType defines the type of container runtime.
type RuntimeType string

const (
	RuntimeTypeDocker RuntimeType = "docker"
	RuntimeTypePodman RuntimeType = "podman"
)

// NewContainerRuntime creates a container runtime of the specified type.
// Podman is driven through the same CLI surface as docker.
func NewContainerRuntime(runtimeType string) (ContainerRuntime, error) {
	rt := RuntimeType(strings.ToLower(runtimeType))

	switch rt {
	case RuntimeTypeDocker, "":
		// Default to Docker if not specified
		return NewDockerRuntime("docker")
	case RuntimeTypePodman:
		return NewDockerRuntime("podman")
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", runtimeType)
	}
}
