package runner

import (
	"os"
	"strconv"
	"strings"

	"crucible/internal/config"
	"crucible/internal/job"
)

// DefaultMakeTarget is the build step's make target when none is given.
const DefaultMakeTarget = "rpms"

// invocationVars computes the namespace entries that depend on the current
// invocation rather than on static configuration: CLI-provided values, the
// rendered test options and the calling user's identity for the cleanup
// step. They are merged over the flattened configuration, so they win on
// key collisions (tests_ignore in particular).
func invocationVars(cfg config.Config, opts job.Options) config.Namespace {
	makeTarget := opts.MakeTarget
	if makeTarget == "" {
		makeTarget = DefaultMakeTarget
	}

	ignoreOpts := make([]string, 0, len(cfg.Tests.Ignore))
	for _, path := range cfg.Tests.Ignore {
		ignoreOpts = append(ignoreOpts, "--ignore "+path)
	}

	verbose := ""
	if cfg.Tests.Verbose {
		verbose = "--verbose"
	}

	return config.Namespace{
		"make_target":   makeTarget,
		"builddep_opts": strings.Join(opts.BuilddepOpts, " "),
		"path":          strings.Join(opts.Paths, " "),
		"tests_ignore":  strings.Join(ignoreOpts, " "),
		"tests_verbose": verbose,
		"uid":           strconv.Itoa(os.Getuid()),
		"gid":           strconv.Itoa(os.Getgid()),
	}
}
