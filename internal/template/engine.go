package template

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingVariableError is returned when a template references a variable that
// is not present in the namespace. It carries enough context to diagnose the
// failure without inspecting the resolver internals.
type MissingVariableError struct {
	Variable string
	Template string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("undefined template variable %q in %q", e.Variable, e.Template)
}

// Pattern matching ${name} placeholders and the $$ escape.
var placeholderPattern = regexp.MustCompile(`\$\$|\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Resolve substitutes ${name} placeholders in tmpl with values from the
// namespace. Substitution is single-pass: a substituted value is never
// re-scanned for further placeholders, so values containing "${" expand to
// exactly that text. The sequence "$$" escapes to a literal "$".
//
// Resolve is a pure function over its inputs and is safe for concurrent use.
// A reference to an undefined variable returns a *MissingVariableError and no
// partially substituted result.
func Resolve(tmpl string, namespace map[string]string) (string, error) {
	var b strings.Builder
	last := 0

	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(tmpl, -1) {
		b.WriteString(tmpl[last:m[0]])
		last = m[1]

		if m[2] < 0 { // "$$" escape
			b.WriteString("$")
			continue
		}

		name := tmpl[m[2]:m[3]]
		value, ok := namespace[name]
		if !ok {
			return "", &MissingVariableError{Variable: name, Template: tmpl}
		}
		b.WriteString(value)
	}

	b.WriteString(tmpl[last:])
	return b.String(), nil
}

// ResolveAll resolves every template in order and returns the substituted
// commands. The first missing variable aborts the whole list.
func ResolveAll(templates []string, namespace map[string]string) ([]string, error) {
	resolved := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		r, err := Resolve(tmpl, namespace)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}
