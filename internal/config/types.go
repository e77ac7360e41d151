package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a crucible run. It is assembled
// by the layered loader (see Load) and treated as immutable afterwards.
type Config struct {
	// GitRepo is the host path of the source tree that gets bind-mounted
	// into the container's working directory.
	GitRepo   string              `yaml:"git_repo"`
	Container ContainerConfig     `yaml:"container"`
	Host      HostConfig          `yaml:"host"`
	Server    ServerConfig        `yaml:"server"`
	Tests     TestsConfig         `yaml:"tests"`
	Steps     map[string][]string `yaml:"steps"`
}

// ContainerConfig describes the execution environment.
type ContainerConfig struct {
	Image       string   `yaml:"image"`
	Hostname    string   `yaml:"hostname"`
	WorkingDir  string   `yaml:"working_dir"`
	Detach      bool     `yaml:"detach"`
	Environment []string `yaml:"environment"`
	// ExecTimeout bounds a single step command. Zero disables the bound.
	// On expiry the command is treated exactly like a failed exit code.
	ExecTimeout Duration `yaml:"exec_timeout"`
}

// HostConfig holds the host-side container settings (mounts, privileges).
type HostConfig struct {
	Binds       []string `yaml:"binds"`
	Tmpfs       []string `yaml:"tmpfs"`
	Privileged  bool     `yaml:"privileged"`
	SecurityOpt []string `yaml:"security_opt"`
}

// ServerConfig parametrizes the server installation steps.
type ServerConfig struct {
	Domain   string `yaml:"domain"`
	Realm    string `yaml:"realm"`
	Password string `yaml:"password"`
	SetupDNS bool   `yaml:"setup_dns"`
}

// TestsConfig parametrizes the test run steps.
type TestsConfig struct {
	Ignore  []string `yaml:"ignore"`
	Verbose bool     `yaml:"verbose"`
}

// Duration wraps time.Duration so it round-trips through YAML in the
// human-readable "30m" form.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
