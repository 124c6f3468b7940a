package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/internal/config"
)

// Execute runs the formrelay CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		envFiles   []string
	)

	load := func() (*config.Config, error) {
		return config.Load(configPath, envFiles...)
	}

	root := &cobra.Command{
		Use:          "formrelay",
		Short:        "Contact form relay for static websites",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	root.AddCommand(serveCmd(load), sendCmd(), configCmd(load))
	return root
}
