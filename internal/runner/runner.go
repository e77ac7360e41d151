package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"crucible/internal/config"
	"crucible/internal/containerizer"
	"crucible/internal/job"
	"crucible/internal/template"
	"crucible/pkg/logging"
)

const runnerSubsystem = "Runner"

// ContainerSession is the runner's view of the long-lived container handle.
// It is satisfied by *containerizer.Session.
type ContainerSession interface {
	ContainerID() string
	Exec(ctx context.Context, command string) error
	StopAndRemove(ctx context.Context) error
}

// SessionFactory creates the container session for a run. It is invoked only
// after prerequisite resolution succeeded, so configuration errors never
// leave a container behind.
type SessionFactory func(ctx context.Context) (ContainerSession, error)

// Runner executes a requested job and its prerequisites, in resolved order,
// inside a single container session, and guarantees that the cleanup job and
// the container teardown happen on every exit path.
type Runner struct {
	cfg        config.Config
	opts       job.Options
	newSession SessionFactory
	out        io.Writer
}

// New creates a Runner. out is the caller-visible output stream; it receives
// the retained container ID and the end-of-run step report.
func New(cfg config.Config, opts job.Options, newSession SessionFactory, out io.Writer) *Runner {
	return &Runner{cfg: cfg, opts: opts, newSession: newSession, out: out}
}

// runContext is the mutable, run-scoped state: the resolved namespace, the
// session handle, the set of already-executed jobs and the step report. It
// is owned exclusively by the single execution path of the run.
type runContext struct {
	namespace config.Namespace
	session   ContainerSession
	executed  map[string]bool
	report    report
}

// Run executes the requested job. The returned error is the first failure
// encountered; cleanup failures are logged but never mask it.
func (r *Runner) Run(ctx context.Context, target string) error {
	jobs, err := job.Definitions(r.cfg)
	if err != nil {
		return err
	}
	set, err := job.NewSet(jobs...)
	if err != nil {
		return err
	}
	order, err := set.Resolve(target)
	if err != nil {
		return err
	}
	cleanup, err := job.CleanupJob(r.cfg)
	if err != nil {
		return err
	}

	rc := &runContext{
		namespace: config.MergeNamespaces(r.cfg.Flatten(), invocationVars(r.cfg, r.opts)),
		executed:  make(map[string]bool),
	}

	rc.session, err = r.newSession(ctx)
	if err != nil {
		return err
	}

	runErr := r.executeJobs(ctx, rc, order)
	if runErr != nil {
		logging.Error(runnerSubsystem, runErr, "Run aborted")
	}

	// Cleanup and teardown must survive operator cancellation.
	cleanupCtx := context.WithoutCancel(ctx)

	if err := r.executeJob(cleanupCtx, rc, cleanup); err != nil {
		logging.Warn(runnerSubsystem, "Cleanup job failed: %v", err)
	}

	if r.opts.KeepContainer {
		logging.Info(runnerSubsystem, "Container teardown suppressed")
		logging.Info(runnerSubsystem, "You will have to stop and remove the container manually")
		fmt.Fprintln(r.out, rc.session.ContainerID())
	} else if err := rc.session.StopAndRemove(cleanupCtx); err != nil {
		logging.Warn(runnerSubsystem, "Cannot remove container: %v", err)
	}

	rc.report.render(r.out)

	return runErr
}

// executeJobs runs the jobs in resolved order, each at most once. The first
// failure stops all further normal-path execution.
func (r *Runner) executeJobs(ctx context.Context, rc *runContext, order []job.Job) error {
	for _, j := range order {
		if rc.executed[j.Name] {
			continue
		}
		rc.executed[j.Name] = true

		logging.Info(runnerSubsystem, "Running job %s", j.Name)
		if err := r.executeJob(ctx, rc, j); err != nil {
			return err
		}
	}
	return nil
}

// executeJob runs the job's steps in declared order, resolving each command
// template against the run namespace right before dispatch.
func (r *Runner) executeJob(ctx context.Context, rc *runContext, j job.Job) error {
	for _, step := range j.Steps {
		if step.Skipped(r.opts) {
			logging.Info(runnerSubsystem, "Skipping step %s of job %s", step.Name, j.Name)
			rc.report.add(j.Name, step.Name, statusSkipped, 0)
			continue
		}

		started := time.Now()
		if err := r.executeStep(ctx, rc, j.Name, step); err != nil {
			rc.report.add(j.Name, step.Name, statusFailed, time.Since(started))
			return err
		}
		rc.report.add(j.Name, step.Name, statusOK, time.Since(started))
	}
	return nil
}

func (r *Runner) executeStep(ctx context.Context, rc *runContext, jobName string, step job.Step) error {
	for _, tmpl := range step.Commands {
		command, err := template.Resolve(tmpl, rc.namespace)
		if err != nil {
			return fmt.Errorf("job %q step %q: %w", jobName, step.Name, err)
		}

		if err := r.execCommand(ctx, rc, command); err != nil {
			var execErr *containerizer.ExecError
			if errors.As(err, &execErr) {
				return &StepError{
					Job:      jobName,
					Step:     step.Name,
					Command:  command,
					ExitCode: execErr.ExitCode,
					Err:      err,
				}
			}
			// Transport failure or interruption; exit code 1 stands in.
			return &StepError{
				Job:      jobName,
				Step:     step.Name,
				Command:  command,
				ExitCode: 1,
				Err:      err,
			}
		}
	}
	return nil
}

// execCommand dispatches one resolved command, bounded by the configured
// per-step timeout. Expiry is indistinguishable from a failed exit code.
func (r *Runner) execCommand(ctx context.Context, rc *runContext, command string) error {
	if timeout := time.Duration(r.cfg.Container.ExecTimeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return rc.session.Exec(ctx, command)
}
