package job

import (
	"fmt"

	"crucible/internal/config"
)

// Options carries the per-invocation run options. Step skip predicates and
// the runner consult it; it is never mutated during a run.
type Options struct {
	// DeveloperMode skips lint-type steps during the build job.
	DeveloperMode bool
	// KeepContainer leaves the container running after the run; the
	// container ID is reported to the caller who owns it from then on.
	KeepContainer bool
	// MakeTarget is the target passed to the build step.
	MakeTarget string
	// BuilddepOpts are extra options forwarded to the builddep step.
	BuilddepOpts []string
	// Paths are free-form test paths forwarded to the run_tests step
	// under the reserved "path" namespace key.
	Paths []string
}

// Step is the atomic unit of work: a named, ordered list of command
// templates executed inside the container, plus an optional skip predicate.
// Steps are immutable once constructed.
type Step struct {
	Name     string
	Commands []string
	SkipWhen func(Options) bool
}

// Skipped reports whether the step should be recorded as skipped for the
// given run options. A skipped step contributes no failure.
func (s Step) Skipped(opts Options) bool {
	return s.SkipWhen != nil && s.SkipWhen(opts)
}

// Job is an ordered sequence of steps plus the names of the jobs that must
// run before it.
type Job struct {
	Name     string
	Requires []string
	Steps    []Step
}

// Job names of the built-in workflow. Cleanup is distinguished: it is
// scheduled by the runner's top-level control flow on every exit path, never
// through the prerequisite graph.
const (
	Build           = "build"
	InstallPackages = "install-packages"
	InstallServer   = "install-server"
	PrepareTests    = "prepare-tests"
	RunTests        = "run-tests"
	Cleanup         = "cleanup"
)

// bindStep binds a step name to its command templates from the configuration.
func bindStep(cfg config.Config, name string, skipWhen func(Options) bool) (Step, error) {
	commands, ok := cfg.Steps[name]
	if !ok || len(commands) == 0 {
		return Step{}, config.NewConfigurationError("",
			fmt.Sprintf("step %q has no commands configured", name), nil)
	}
	return Step{Name: name, Commands: commands, SkipWhen: skipWhen}, nil
}

func bindSteps(cfg config.Config, names ...string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		step, err := bindStep(cfg, name, nil)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Definitions builds the fixed job set of the workflow, binding every step to
// its command templates from cfg. The topology is a linear prerequisite
// chain: build <- install-packages <- install-server <- prepare-tests <-
// run-tests.
func Definitions(cfg config.Config) ([]Job, error) {
	builddep, err := bindStep(cfg, config.StepBuilddep, nil)
	if err != nil {
		return nil, err
	}
	configure, err := bindStep(cfg, config.StepConfigure, nil)
	if err != nil {
		return nil, err
	}
	lint, err := bindStep(cfg, config.StepLint, func(o Options) bool {
		return o.DeveloperMode
	})
	if err != nil {
		return nil, err
	}
	build, err := bindStep(cfg, config.StepBuild, nil)
	if err != nil {
		return nil, err
	}

	jobs := []Job{
		{
			Name:  Build,
			Steps: []Step{builddep, configure, lint, build},
		},
	}

	chain := []struct {
		name     string
		requires string
		steps    []string
	}{
		{InstallPackages, Build, []string{config.StepInstallPackages}},
		{InstallServer, InstallPackages, []string{config.StepInstallServer}},
		{PrepareTests, InstallServer, []string{config.StepPrepareTests}},
		{RunTests, PrepareTests, []string{config.StepRunTests}},
	}
	for _, link := range chain {
		steps, err := bindSteps(cfg, link.steps...)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{
			Name:     link.name,
			Requires: []string{link.requires},
			Steps:    steps,
		})
	}

	return jobs, nil
}

// CleanupJob builds the distinguished cleanup job from cfg.
func CleanupJob(cfg config.Config) (Job, error) {
	step, err := bindStep(cfg, config.StepCleanup, nil)
	if err != nil {
		return Job{}, err
	}
	return Job{Name: Cleanup, Steps: []Step{step}}, nil
}
