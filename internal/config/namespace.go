package config

import (
	"strconv"
	"strings"
	"time"
)

// Namespace is the flat key/value view of the configuration that step
// templates resolve against. Keys join the section name and the option name
// with an underscore, e.g. Container.Image becomes "container_image".
//
// A Namespace is built once per run and never mutated afterwards; it is
// passed explicitly to every component that needs it.
type Namespace map[string]string

// MergeNamespaces combines the given layers into a single namespace. Later
// layers override earlier ones; the merge is total and deterministic and the
// inputs are left untouched.
func MergeNamespaces(layers ...Namespace) Namespace {
	merged := make(Namespace)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// Flatten produces the template namespace for this configuration. List
// values are space-joined, booleans render as "true"/"false". The steps
// section is not part of the namespace: step commands are the templates,
// not substitution values.
func (c Config) Flatten() Namespace {
	return Namespace{
		"git_repo": c.GitRepo,

		"container_image":        c.Container.Image,
		"container_hostname":     c.Container.Hostname,
		"container_working_dir":  c.Container.WorkingDir,
		"container_detach":       strconv.FormatBool(c.Container.Detach),
		"container_environment":  strings.Join(c.Container.Environment, " "),
		"container_exec_timeout": time.Duration(c.Container.ExecTimeout).String(),

		"host_binds":        strings.Join(c.Host.Binds, " "),
		"host_tmpfs":        strings.Join(c.Host.Tmpfs, " "),
		"host_privileged":   strconv.FormatBool(c.Host.Privileged),
		"host_security_opt": strings.Join(c.Host.SecurityOpt, " "),

		"server_domain":    c.Server.Domain,
		"server_realm":     c.Server.Realm,
		"server_password":  c.Server.Password,
		"server_setup_dns": strconv.FormatBool(c.Server.SetupDNS),

		"tests_ignore":  strings.Join(c.Tests.Ignore, " "),
		"tests_verbose": strconv.FormatBool(c.Tests.Verbose),
	}
}
