// Package config loads and merges crucible configuration.
//
// Configuration is assembled from layers, later layers winning: built-in
// defaults, the user config file, an explicitly named config file, and
// command line overrides. Scalar options and lists replace the previous
// layer wholesale; the steps map merges per step name, so a user file can
// override a single step without repeating the rest.
//
// Flatten projects the merged configuration into a flat string namespace
// (container_image, server_domain, ...) used for ${variable} substitution
// in step command templates.
package config
