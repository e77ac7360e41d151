package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"crucible/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	appConfigDir   = "crucible"
	configFileName = "config.yaml"
)

// osUserHomeDir is a variable to allow mocking in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigDir returns the per-user configuration directory,
// honouring XDG_CONFIG_HOME when set.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appConfigDir), nil
	}
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appConfigDir), nil
}

// DefaultConfigFile returns the path of the per-user config file.
func DefaultConfigFile() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Overrides carries per-invocation configuration overrides from the CLI.
// They form the highest layer of the merge.
type Overrides struct {
	GitRepo        string
	ContainerImage string
}

// Load assembles the effective configuration: built-in defaults, then the
// default user config file (skipped when absent), then the explicit config
// file (must exist when given), then CLI overrides. Later layers win; the
// merge is total, so the result is always a complete configuration.
func Load(explicitPath string, overrides Overrides) (Config, error) {
	cfg := Default()

	defaultFile, err := DefaultConfigFile()
	if err != nil {
		return Config{}, NewConfigurationError("", err.Error(), err)
	}

	if err := applyFile(&cfg, defaultFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		logging.Debug("Config", "No config file at %s, using defaults", defaultFile)
	} else {
		logging.Info("Config", "Loaded configuration from %s", defaultFile)
	}

	if explicitPath != "" {
		if err := applyFile(&cfg, explicitPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, NewConfigurationError(explicitPath, "file does not exist", err)
			}
			return Config{}, err
		}
		logging.Info("Config", "Loaded configuration from %s", explicitPath)
	}

	if overrides.GitRepo != "" {
		cfg.GitRepo = overrides.GitRepo
	}
	if overrides.ContainerImage != "" {
		cfg.Container.Image = overrides.ContainerImage
	}

	return cfg, nil
}

// applyFile overlays the YAML document at path onto cfg. Scalars and lists
// replace the current value wholly; map entries (the steps section) merge by
// key. Unknown options are rejected.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return NewConfigurationError(path, "cannot read file", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file overrides nothing
		}
		return NewConfigurationError(path, "invalid configuration", err)
	}
	return nil
}

// WriteSample dumps cfg as a commented YAML document, suitable as a starting
// point for a user config file.
func WriteSample(w io.Writer, cfg Config) error {
	if _, err := fmt.Fprintln(w, "# crucible configuration"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
