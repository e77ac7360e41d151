package config

import "fmt"

// ConfigurationError represents a fatal problem with the configuration:
// an unreadable or malformed file, an unknown option, or a missing step
// definition. It is always detected before any container is created.
type ConfigurationError struct {
	FilePath string // file that caused the error, empty for non-file problems
	Message  string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.FilePath, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError for the given file.
func NewConfigurationError(filePath, message string, err error) *ConfigurationError {
	return &ConfigurationError{FilePath: filePath, Message: message, Err: err}
}
