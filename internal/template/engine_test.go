package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	namespace := map[string]string{
		"server_domain":   "example.test",
		"server_password": "Secret123",
		"make_target":     "rpms",
		"nested":          "${server_domain}",
	}

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "no placeholders",
			template: "autoreconf -i && ./configure",
			expected: "autoreconf -i && ./configure",
		},
		{
			name:     "single placeholder",
			template: "make ${make_target}",
			expected: "make rpms",
		},
		{
			name:     "multiple placeholders",
			template: "install -U --domain ${server_domain} -p ${server_password} -a ${server_password}",
			expected: "install -U --domain example.test -p Secret123 -a Secret123",
		},
		{
			name:     "dollar escape",
			template: "echo $${server_domain}",
			expected: "echo ${server_domain}",
		},
		{
			name:     "stray dollar is literal",
			template: "awk '{print $1}'",
			expected: "awk '{print $1}'",
		},
		{
			name:     "substituted value is not re-expanded",
			template: "echo ${nested}",
			expected: "echo ${server_domain}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(tt.template, namespace)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	namespace := map[string]string{"make_target": "rpms"}

	first, err := Resolve("make ${make_target}", namespace)
	require.NoError(t, err)
	second, err := Resolve("make ${make_target}", namespace)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// The namespace must not have been touched.
	assert.Equal(t, map[string]string{"make_target": "rpms"}, namespace)
}

func TestResolveMissingVariable(t *testing.T) {
	result, err := Resolve("make ${invalid_var} ${make_target}",
		map[string]string{"make_target": "rpms"})

	require.Error(t, err)
	// No partial substitution may leak out.
	assert.Empty(t, result)

	var missing *MissingVariableError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "invalid_var", missing.Variable)
	assert.Contains(t, missing.Template, "${invalid_var}")
}

func TestResolveAll(t *testing.T) {
	namespace := map[string]string{"uid": "1000", "gid": "1000", "container_working_dir": "/src"}

	resolved, err := ResolveAll([]string{
		"chown -R ${uid}:${gid} ${container_working_dir}",
		"true",
	}, namespace)
	require.NoError(t, err)
	assert.Equal(t, []string{"chown -R 1000:1000 /src", "true"}, resolved)

	_, err = ResolveAll([]string{"true", "echo ${missing}"}, namespace)
	var missing *MissingVariableError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "missing", missing.Variable)
}
