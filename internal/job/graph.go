package job

import (
	"fmt"
	"strings"

	"crucible/internal/config"
)

// CyclicDependencyError reports a cycle in the prerequisite relation. The
// original job set is acyclic by construction; detecting cycles explicitly is
// a safety property so that configuration mistakes in future job wiring fail
// before any step executes.
type CyclicDependencyError struct {
	// Path is the dependency chain that closed the cycle, ending with the
	// job that was revisited.
	Path []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic job dependency: %s", strings.Join(e.Path, " -> "))
}

// Set holds the declared jobs of a run, keyed by unique name.
type Set struct {
	jobs map[string]Job
}

// NewSet builds a Set from the given jobs. A duplicate job name is a fatal
// configuration error.
func NewSet(jobs ...Job) (*Set, error) {
	set := &Set{jobs: make(map[string]Job, len(jobs))}
	for _, j := range jobs {
		if _, exists := set.jobs[j.Name]; exists {
			return nil, config.NewConfigurationError("",
				fmt.Sprintf("duplicate job name %q", j.Name), nil)
		}
		set.jobs[j.Name] = j
	}
	return set, nil
}

// Get returns the named job.
func (s *Set) Get(name string) (Job, bool) {
	j, ok := s.jobs[name]
	return j, ok
}

// visit state during resolution.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	resolved
)

// Resolve computes the linear execution order for the requested job:
// a depth-first expansion of the prerequisite relation where every
// prerequisite is placed strictly before its dependent and every job appears
// exactly once, keeping its first-seen position. Revisiting a job that is
// still on the current path is a cycle and aborts resolution.
func (s *Set) Resolve(target string) ([]Job, error) {
	states := make(map[string]visitState, len(s.jobs))
	var order []Job

	var walk func(name string, path []string) error
	walk = func(name string, path []string) error {
		j, ok := s.jobs[name]
		if !ok {
			return config.NewConfigurationError("",
				fmt.Sprintf("unknown job %q", name), nil)
		}

		switch states[name] {
		case resolved:
			return nil
		case inProgress:
			return &CyclicDependencyError{Path: append(path, name)}
		}

		states[name] = inProgress
		path = append(path, name)
		for _, req := range j.Requires {
			if err := walk(req, path); err != nil {
				return err
			}
		}
		states[name] = resolved
		order = append(order, j)
		return nil
	}

	if err := walk(target, nil); err != nil {
		return nil, err
	}
	return order, nil
}
