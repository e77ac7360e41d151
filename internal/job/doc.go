// Package job defines the workflow jobs crucible can run and the
// prerequisite graph between them.
//
// A Job is a named group of steps with an ordered list of prerequisite
// jobs. A Step is a named list of command templates taken from the
// configuration, optionally guarded by a skip predicate evaluated against
// the run options.
//
// # Dependency Rules
//
// The job graph enforces these rules:
//
//  1. No circular prerequisites allowed
//  2. A job runs only after all of its prerequisites have run
//  3. Each job runs at most once per invocation, no matter how many
//     jobs require it
//
// # Workflow Topology
//
// The built-in jobs form a linear chain:
//
//	build → install-packages → install-server → prepare-tests → run-tests
//
// The cleanup job stands outside the chain. It is never a prerequisite of
// anything and runs unconditionally at the end of every invocation.
//
// # Operations
//
// Definitions: Bind the built-in jobs to the step commands from a Config.
// A job whose step has no commands configured is a configuration error.
//
// Set.Resolve: Depth-first traversal producing the execution order for a
// target job, prerequisites strictly before dependents, duplicates removed.
// Unknown jobs and cycles are reported as errors rather than panics.
package job
