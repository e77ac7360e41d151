// Package runner executes resolved job chains inside a container session.
//
// The Runner ties the other packages together: it resolves the requested
// target through the job graph, merges the flattened configuration with
// invocation-scoped variables into the template namespace, obtains a
// container session from an injected factory, and executes every step of
// every job in order.
//
// Guarantees the Runner makes on every invocation, including failed and
// interrupted ones:
//
//   - The cleanup job runs after the main chain, whatever its outcome.
//   - The container is stopped and removed, unless the caller asked to
//     keep it, in which case its ID is printed instead.
//   - A failing step surfaces as a StepError carrying the command's exit
//     code; cleanup failures never mask the primary error.
//
// A summary table of all executed steps is rendered once the run finishes.
package runner
