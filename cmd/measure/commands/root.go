// Package commands holds the measure command line.
package commands

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/ncobase/measure/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	confPath string
	envFile  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "measure",
		Short:         "Last-value metric query and aggregation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(opts.envFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.confPath, "conf", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with environment overrides")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newReadCommand(opts),
		newWriteCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// loadEnv loads a dotenv file. A missing file is ignored; variables
// already set in the environment win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfig(o.confPath)
}
