package cmd

import (
	"crucible/internal/job"

	"github.com/spf13/cobra"
)

// newRunTestsCmd creates the command that runs the test suite in the
// container, after building and installing the server.
func newRunTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-tests [PATH...]",
		Short: "Run tests in the container",
		Long: `Run the test suite in the container. Free-form PATH arguments are
forwarded to the run_tests step templates under the "path" variable,
restricting the run to the given test paths.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, job.RunTests, job.Options{
				KeepContainer: flagNoCleanup,
				Paths:         args,
			})
		},
	}
}
