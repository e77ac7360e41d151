package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"crucible/internal/config"
	"crucible/pkg/logging"

	"github.com/spf13/cobra"
)

// newSampleConfigCmd creates the command that writes the effective merged
// configuration as a starting-point user config file.
func newSampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Write a sample config file into the user config directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelInfo
			if flagDebug {
				level = logging.LevelDebug
			}
			logging.InitForCLI(level, os.Stderr)

			cfg, err := config.Load(flagConfigFile, config.Overrides{
				GitRepo:        flagGitRepo,
				ContainerImage: flagContainerImage,
			})
			if err != nil {
				return err
			}

			path, err := config.DefaultConfigFile()
			if err != nil {
				return err
			}

			logging.Info("Config", "Writing configuration to file %s", path)

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("cannot create config directory: %w", err)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("cannot create config file: %w", err)
			}
			defer f.Close()

			return config.WriteSample(f, cfg)
		},
	}
}
