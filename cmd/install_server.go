package cmd

import (
	"crucible/internal/job"

	"github.com/spf13/cobra"
)

// newInstallServerCmd creates the command that builds, installs the packages
// and installs the server in the container.
func newInstallServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-server",
		Short: "Install the server in the container",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, job.InstallServer, job.Options{
				KeepContainer: flagNoCleanup,
			})
		},
	}
}
