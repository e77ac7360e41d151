package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"crucible/internal/config"
	"crucible/internal/containerizer"
	"crucible/internal/job"
	"crucible/internal/runner"
	"crucible/pkg/logging"

	"github.com/spf13/cobra"
)

// setupOutputs decides where structured logs and raw container output go.
// Logs go to stderr, command output to stdout; --log-file tees both into the
// given file. The returned closer must be called at the end of the run.
func setupOutputs() (logWriter, execWriter io.Writer, closer func(), err error) {
	logWriter = os.Stderr
	execWriter = os.Stdout
	closer = func() {}

	if flagLogFile == "" {
		return logWriter, execWriter, closer, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	return io.MultiWriter(os.Stderr, f), io.MultiWriter(os.Stdout, f), func() { f.Close() }, nil
}

// runAction is the shared wiring behind every job subcommand: initialize
// logging, load the layered configuration, set up signal handling and hand
// off to the runner. An operator interruption cancels the run context; the
// runner still performs cleanup and teardown before returning.
func runAction(cmd *cobra.Command, target string, opts job.Options) error {
	logWriter, execWriter, closer, err := setupOutputs()
	if err != nil {
		return err
	}
	defer closer()

	level := logging.LevelInfo
	if flagDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, logWriter)

	cfg, err := config.Load(flagConfigFile, config.Overrides{
		GitRepo:        flagGitRepo,
		ContainerImage: flagContainerImage,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (runner.ContainerSession, error) {
		rt, err := containerizer.NewContainerRuntime(flagRuntime)
		if err != nil {
			return nil, &containerizer.CreationError{Message: "container runtime unavailable", Err: err}
		}
		return containerizer.NewSession(ctx, rt, cfg, execWriter)
	}

	r := runner.New(cfg, opts, factory, cmd.OutOrStdout())
	return r.Run(ctx, target)
}
