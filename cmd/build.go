package cmd

import (
	"crucible/internal/job"
	"crucible/internal/runner"

	"github.com/spf13/cobra"
)

// newBuildCmd creates the command that executes the build job.
func newBuildCmd() *cobra.Command {
	var (
		makeTarget    string
		developerMode bool
		builddepOpts  []string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Execute the build job in the container",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, job.Build, job.Options{
				DeveloperMode: developerMode,
				KeepContainer: flagNoCleanup,
				MakeTarget:    makeTarget,
				BuilddepOpts:  builddepOpts,
			})
		},
	}

	cmd.Flags().StringVar(&makeTarget, "make-target", runner.DefaultMakeTarget, "make target for the build step")
	cmd.Flags().BoolVar(&developerMode, "developer-mode", false, "developer mode (lint during build is skipped)")
	cmd.Flags().StringArrayVarP(&builddepOpts, "builddep-opts", "b", nil, "options to pass to the builddep step")

	return cmd
}
