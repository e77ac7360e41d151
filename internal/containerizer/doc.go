// Package containerizer provides container runtime abstraction for crucible.
//
// This package handles the complexity of working with different container
// runtimes (Docker, Podman) through a common interface. It is used for
// running build and test workflows inside a single long-lived container.
//
// # Core Components
//
// ContainerRuntime: Interface that abstracts container operations
//   - PullImage: Download container images
//   - CreateContainer: Create new containers with configuration
//   - StartContainer: Start created containers
//   - Exec: Run a command inside a running container
//   - StopContainer: Stop running containers
//   - RemoveContainer: Clean up containers
//
// DockerRuntime: Implementation driving the docker (or podman) CLI
//   - Shells out to the runtime binary, no daemon API client required
//   - Streams exec output unmodified to the configured writer
//   - Reports the command's exit code separately from transport errors
//
// Session: The lifecycle of one workflow container
//   - Pulls the image when it is not already present
//   - Creates and starts a uniquely named container
//   - Mounts the source repository into the container working directory
//   - Tears the container down exactly once, on request
//
// # Container Configuration
//
// Containers are configured with:
//   - Image: Container image to run
//   - Hostname: Hostname inside the container
//   - WorkingDir: Directory commands execute in
//   - Env: Environment variables
//   - Binds: Volume mounts for the source tree and system paths
//   - Tmpfs: Tmpfs mounts required by systemd-based images
//   - Privileged, SecurityOpt: Settings needed for installing a full server
//
// # Usage Example
//
//	runtime, err := containerizer.NewContainerRuntime("docker")
//	if err != nil {
//	    return err
//	}
//
//	session, err := containerizer.NewSession(ctx, runtime, cfg, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer session.StopAndRemove(ctx)
//
//	if _, err := session.Exec(ctx, "make rpms"); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// CreationError covers every failure on the way to a running container,
// from an unavailable image to a refused create or start. ExecError carries
// the exit code of a command that ran but failed, so callers can propagate
// it as the process exit status.
package containerizer
