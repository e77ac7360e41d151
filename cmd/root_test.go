package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"crucible/internal/config"
	"crucible/internal/job"
	"crucible/internal/runner"
	"crucible/internal/template"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "crucible" {
		t.Errorf("Expected Use to be 'crucible', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"build", "install-server", "run-tests", "sample-config", "version"}

	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "step failure uses the command exit code",
			err:      &runner.StepError{Job: "build", Step: "lint", ExitCode: 7},
			expected: 7,
		},
		{
			name:     "wrapped step failure",
			err:      fmt.Errorf("run failed: %w", &runner.StepError{ExitCode: 3}),
			expected: 3,
		},
		{
			name:     "step failure without exit code",
			err:      &runner.StepError{Job: "build", Step: "lint"},
			expected: ExitCodeFailure,
		},
		{
			name:     "configuration error",
			err:      config.NewConfigurationError("/tmp/c.yaml", "unknown option", nil),
			expected: ExitCodeConfigError,
		},
		{
			name:     "cyclic dependency",
			err:      &job.CyclicDependencyError{Path: []string{"a", "b", "a"}},
			expected: ExitCodeConfigError,
		},
		{
			name:     "missing template variable",
			err:      &template.MissingVariableError{Variable: "x", Template: "${x}"},
			expected: ExitCodeConfigError,
		},
		{
			name:     "generic error",
			err:      errors.New("boom"),
			expected: ExitCodeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.expected {
				t.Errorf("getExitCode() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestVersionCommandOutput(t *testing.T) {
	SetVersion("9.9.9")

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if !strings.Contains(out.String(), "crucible version 9.9.9") {
		t.Errorf("unexpected version output: %q", out.String())
	}
}

func TestBuildCommandFlags(t *testing.T) {
	cmd := newBuildCmd()

	for _, flag := range []string{"make-target", "developer-mode", "builddep-opts"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Expected build command to define --%s", flag)
		}
	}

	if cmd.Flags().Lookup("make-target").DefValue != runner.DefaultMakeTarget {
		t.Errorf("Expected default make target %q", runner.DefaultMakeTarget)
	}
}
