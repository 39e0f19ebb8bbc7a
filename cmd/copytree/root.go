package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/copytree/cmd/copytree/opts"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates the shared options handed to every command. Flag
// derived fields are filled in by the root command's PersistentPreRun, after
// cobra has parsed the command line.
func newRootOpts() *opts.RootOpts {
	return &opts.RootOpts{
		Out: os.Stdout,
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".copytree.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
