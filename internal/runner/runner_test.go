package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"crucible/internal/config"
	"crucible/internal/containerizer"
	"crucible/internal/job"
	"crucible/internal/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records executed commands and can be told to fail a command
// matching a substring.
type fakeSession struct {
	execs     []string
	failOn    string
	exitCode  int
	stopCalls int
}

func (f *fakeSession) ContainerID() string { return "fake-container-id" }

func (f *fakeSession) Exec(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.execs = append(f.execs, command)
	if f.failOn != "" && strings.Contains(command, f.failOn) {
		return &containerizer.ExecError{Command: command, ExitCode: f.exitCode}
	}
	return nil
}

func (f *fakeSession) StopAndRemove(ctx context.Context) error {
	f.stopCalls++
	return nil
}

func newTestRunner(cfg config.Config, opts job.Options, session *fakeSession, out *bytes.Buffer) *Runner {
	factory := func(ctx context.Context) (ContainerSession, error) {
		return session, nil
	}
	return New(cfg, opts, factory, out)
}

// testConfig uses one recognizable command per step so tests can assert on
// execution order without repeating the default command strings.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Steps = map[string][]string{
		config.StepBuilddep:        {"run builddep ${builddep_opts}"},
		config.StepConfigure:       {"run configure"},
		config.StepLint:            {"run lint"},
		config.StepBuild:           {"run build ${make_target}"},
		config.StepInstallPackages: {"run install_packages"},
		config.StepInstallServer:   {"run install_server ${server_domain}"},
		config.StepPrepareTests:    {"run prepare_tests"},
		config.StepRunTests:        {"run run_tests ${tests_ignore} ${tests_verbose} ${path}"},
		config.StepCleanup:         {"run cleanup ${uid}:${gid}"},
	}
	return cfg
}

func executedSteps(execs []string) []string {
	steps := make([]string, 0, len(execs))
	for _, cmd := range execs {
		fields := strings.Fields(cmd)
		steps = append(steps, fields[1])
	}
	return steps
}

func TestRunFullWorkflow(t *testing.T) {
	session := &fakeSession{}
	var out bytes.Buffer
	r := newTestRunner(testConfig(), job.Options{}, session, &out)

	err := r.Run(context.Background(), job.RunTests)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"builddep", "configure", "lint", "build",
		"install_packages", "install_server", "prepare_tests", "run_tests",
		"cleanup",
	}, executedSteps(session.execs))

	// Without the keep option, teardown happens exactly once.
	assert.Equal(t, 1, session.stopCalls)
	// The report lists every executed step.
	assert.Contains(t, out.String(), "run_tests")
}

func TestRunSubstitutesVariables(t *testing.T) {
	cfg := testConfig()
	cfg.Tests.Ignore = []string{"tests/integration"}
	cfg.Tests.Verbose = true

	session := &fakeSession{}
	r := newTestRunner(cfg, job.Options{
		MakeTarget: "lint",
		Paths:      []string{"tests/unit/test_api.py"},
	}, session, &bytes.Buffer{})

	require.NoError(t, r.Run(context.Background(), job.RunTests))

	joined := strings.Join(session.execs, "\n")
	assert.Contains(t, joined, "run build lint")
	assert.Contains(t, joined, "run install_server example.test")
	assert.Contains(t, joined,
		"run run_tests --ignore tests/integration --verbose tests/unit/test_api.py")
}

func TestRunStepFailureStopsLaterJobsButNotCleanup(t *testing.T) {
	// Fail the second step of build; install-server and run-tests must not
	// execute, cleanup must.
	session := &fakeSession{failOn: "run configure", exitCode: 7}
	r := newTestRunner(testConfig(), job.Options{}, session, &bytes.Buffer{})

	err := r.Run(context.Background(), job.RunTests)
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, job.Build, stepErr.Job)
	assert.Equal(t, config.StepConfigure, stepErr.Step)
	assert.Equal(t, 7, stepErr.ExitCode)

	assert.Equal(t,
		[]string{"builddep", "configure", "cleanup"},
		executedSteps(session.execs))
	assert.Equal(t, 1, session.stopCalls)
}

func TestRunCleanupFailureDoesNotMaskPrimaryError(t *testing.T) {
	session := &fakeSession{failOn: "run build", exitCode: 2}
	r := newTestRunner(testConfig(), job.Options{}, session, &bytes.Buffer{})

	// The cleanup command contains neither "run build" nor fails here, so
	// make cleanup fail too by matching both.
	session.failOn = "run"
	err := r.Run(context.Background(), job.RunTests)
	require.Error(t, err)

	// The reported failure is the first one (builddep), not cleanup's.
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, config.StepBuilddep, stepErr.Step)
}

func TestRunDeveloperModeSkipsLint(t *testing.T) {
	session := &fakeSession{}
	var out bytes.Buffer
	r := newTestRunner(testConfig(), job.Options{DeveloperMode: true}, session, &out)

	require.NoError(t, r.Run(context.Background(), job.Build))

	steps := executedSteps(session.execs)
	assert.NotContains(t, steps, "lint")
	assert.Equal(t, []string{"builddep", "configure", "build", "cleanup"}, steps)
	// The skip is recorded, not silently dropped.
	assert.Contains(t, out.String(), "skipped")
}

func TestRunKeepContainer(t *testing.T) {
	session := &fakeSession{}
	var out bytes.Buffer
	r := newTestRunner(testConfig(), job.Options{KeepContainer: true}, session, &out)

	require.NoError(t, r.Run(context.Background(), job.Build))

	assert.Zero(t, session.stopCalls, "retained container must not be removed")
	assert.Contains(t, out.String(), "fake-container-id")
	// Cleanup steps still run even when the container is kept.
	assert.Contains(t, executedSteps(session.execs), "cleanup")
}

func TestRunMissingTemplateVariable(t *testing.T) {
	cfg := testConfig()
	cfg.Steps[config.StepBuild] = []string{"run build ${no_such_variable}"}

	session := &fakeSession{}
	r := newTestRunner(cfg, job.Options{}, session, &bytes.Buffer{})

	err := r.Run(context.Background(), job.Build)
	require.Error(t, err)

	var missing *template.MissingVariableError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "no_such_variable", missing.Variable)
	assert.Contains(t, err.Error(), job.Build)

	// The failed step aborted the run, but cleanup still happened.
	assert.Contains(t, executedSteps(session.execs), "cleanup")
	assert.Equal(t, 1, session.stopCalls)
}

func TestRunSessionCreationFailure(t *testing.T) {
	creationErr := &containerizer.CreationError{Image: "img", Message: "daemon unreachable"}
	factory := func(ctx context.Context) (ContainerSession, error) {
		return nil, creationErr
	}
	r := New(testConfig(), job.Options{}, factory, &bytes.Buffer{})

	err := r.Run(context.Background(), job.Build)
	require.Error(t, err)

	var creation *containerizer.CreationError
	require.True(t, errors.As(err, &creation))
}

func TestRunConfigurationErrorBeforeSession(t *testing.T) {
	cfg := testConfig()
	delete(cfg.Steps, config.StepRunTests)

	factoryCalled := false
	factory := func(ctx context.Context) (ContainerSession, error) {
		factoryCalled = true
		return &fakeSession{}, nil
	}
	r := New(cfg, job.Options{}, factory, &bytes.Buffer{})

	err := r.Run(context.Background(), job.RunTests)
	require.Error(t, err)

	var confErr *config.ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.False(t, factoryCalled, "no container may be created on configuration errors")
}

func TestRunUnknownTargetJob(t *testing.T) {
	factoryCalled := false
	factory := func(ctx context.Context) (ContainerSession, error) {
		factoryCalled = true
		return &fakeSession{}, nil
	}
	r := New(testConfig(), job.Options{}, factory, &bytes.Buffer{})

	err := r.Run(context.Background(), "no-such-job")
	require.Error(t, err)

	var confErr *config.ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.False(t, factoryCalled)
}

func TestRunInterruptionStillCleansUp(t *testing.T) {
	session := &fakeSession{}
	r := newTestRunner(testConfig(), job.Options{}, session, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, job.RunTests)
	require.Error(t, err)

	// The cancelled context stopped normal execution, but the cleanup job
	// and the teardown still ran under a detached context.
	assert.Equal(t, []string{"cleanup"}, executedSteps(session.execs))
	assert.Equal(t, 1, session.stopCalls)
}

func TestExecuteJobsAtMostOnce(t *testing.T) {
	session := &fakeSession{}
	r := newTestRunner(testConfig(), job.Options{}, session, &bytes.Buffer{})

	jobs, err := job.Definitions(testConfig())
	require.NoError(t, err)
	set, err := job.NewSet(jobs...)
	require.NoError(t, err)
	order, err := set.Resolve(job.RunTests)
	require.NoError(t, err)

	rc := &runContext{
		namespace: config.MergeNamespaces(testConfig().Flatten(), invocationVars(testConfig(), job.Options{})),
		session:   session,
		executed:  make(map[string]bool),
	}

	// Requesting the same resolved order twice within one run context must
	// not re-run anything.
	require.NoError(t, r.executeJobs(context.Background(), rc, order))
	firstPass := len(session.execs)
	require.NoError(t, r.executeJobs(context.Background(), rc, order))

	assert.Equal(t, firstPass, len(session.execs))
}
