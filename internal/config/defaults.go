package config

// Default step names referenced by the built-in job set. They must all be
// present in the merged configuration.
const (
	StepBuilddep        = "builddep"
	StepConfigure       = "configure"
	StepLint            = "lint"
	StepBuild           = "build"
	StepInstallPackages = "install_packages"
	StepInstallServer   = "install_server"
	StepPrepareTests    = "prepare_tests"
	StepRunTests        = "run_tests"
	StepCleanup         = "cleanup"
)

// DefaultImage is the image used when no configuration overrides it.
const DefaultImage = "registry.fedoraproject.org/fedora:42"

// Default returns the built-in configuration. It is the lowest layer of the
// merge: the default user config file, an explicit --config file and CLI
// overrides are applied on top of it, in that order.
func Default() Config {
	return Config{
		GitRepo: "/path/to/repo",
		Container: ContainerConfig{
			Image:       DefaultImage,
			Hostname:    "server.example.test",
			WorkingDir:  "/src",
			Detach:      true,
			Environment: []string{},
			ExecTimeout: 0,
		},
		Host: HostConfig{
			Binds: []string{
				"/sys/fs/cgroup:/sys/fs/cgroup:ro",
				"/dev/urandom:/dev/random:ro",
			},
			Tmpfs:       []string{"/tmp", "/run"},
			Privileged:  false,
			SecurityOpt: []string{"label:disable"},
		},
		Server: ServerConfig{
			Domain:   "example.test",
			Realm:    "EXAMPLE.TEST",
			Password: "Secret123",
			SetupDNS: true,
		},
		Tests: TestsConfig{
			Ignore:  []string{"tests/integration"},
			Verbose: true,
		},
		Steps: map[string][]string{
			StepBuilddep: {
				"dnf builddep -y ${builddep_opts} --spec dist/*.spec.in",
			},
			StepConfigure: {
				"autoreconf -i && ./configure",
			},
			StepLint: {
				"make lint",
			},
			StepBuild: {
				"make ${make_target}",
			},
			StepInstallPackages: {
				"dnf install -y ${container_working_dir}/dist/rpms/*.rpm --best --allowerasing",
			},
			StepInstallServer: {
				"make install-server DOMAIN=${server_domain} REALM=${server_realm} PASSWORD=${server_password}",
			},
			StepPrepareTests: {
				"make prepare-tests PASSWORD=${server_password}",
			},
			StepRunTests: {
				"python3 -m pytest ${tests_ignore} ${tests_verbose} ${path}",
			},
			StepCleanup: {
				"chown -R ${uid}:${gid} ${container_working_dir}",
			},
		},
	}
}
