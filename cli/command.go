// Package cli provides the shared cobra command scaffolding.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/pkgnav/config"
)

// NewStandardCommand creates a new command with the standard pkgnav flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to pkgnav.yml config file")
	cmd.PersistentFlags().StringP("root", "r", "", "Package root directory (overrides config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

// LoadConfig resolves the configuration honoring the --config and --root flags.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = config.ExpandPath(root)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
