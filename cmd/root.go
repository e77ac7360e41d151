package cmd

import (
	"errors"
	"os"

	"crucible/internal/config"
	"crucible/internal/job"
	"crucible/internal/runner"
	"crucible/internal/template"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. A failed step exits with the command's own
// exit code instead, so callers can tell apart what broke inside the
// container.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeFailure indicates a general error.
	ExitCodeFailure = 1
	// ExitCodeConfigError indicates an invalid configuration: unknown
	// options, a cyclic job dependency or an undefined template variable.
	ExitCodeConfigError = 2
)

// Global flags, shared by every job subcommand.
var (
	flagConfigFile     string
	flagDebug          bool
	flagLogFile        string
	flagNoCleanup      bool
	flagGitRepo        string
	flagContainerImage string
	flagRuntime        string
)

// rootCmd represents the base command for the crucible application.
var rootCmd = &cobra.Command{
	Use:   "crucible",
	Short: "Build, install a server and run tests in a container",
	Long: `crucible runs a multi-stage test workflow inside an ephemeral
container: it builds artifacts from a source tree, installs a server from
them and runs the test suite. The container is torn down at the end of the
run unless --no-cleanup is given.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. It is called from the
// main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "crucible version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the exit code based on the error type. This
// provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var stepErr *runner.StepError
	if errors.As(err, &stepErr) {
		if stepErr.ExitCode > 0 {
			return stepErr.ExitCode
		}
		return ExitCodeFailure
	}

	var confErr *config.ConfigurationError
	if errors.As(err, &confErr) {
		return ExitCodeConfigError
	}

	var cyclicErr *job.CyclicDependencyError
	if errors.As(err, &cyclicErr) {
		return ExitCodeConfigError
	}

	var missingErr *template.MissingVariableError
	if errors.As(err, &missingErr) {
		return ExitCodeConfigError
	}

	return ExitCodeFailure
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfigFile, "config", "c", "", "load configuration from the specified file")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "print out debugging info")
	pf.StringVarP(&flagLogFile, "log-file", "l", "", "log command output to a file")
	pf.BoolVar(&flagNoCleanup, "no-cleanup", false, "do not stop and remove the container at the end")
	pf.StringVar(&flagGitRepo, "git-repo", "", "git repository to use")
	pf.StringVar(&flagContainerImage, "container-image", "", "container image to use")
	pf.StringVar(&flagRuntime, "runtime", "docker", "container runtime to use (docker or podman)")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newInstallServerCmd())
	rootCmd.AddCommand(newRunTestsCmd())
	rootCmd.AddCommand(newSampleConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}
