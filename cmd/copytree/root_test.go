package main

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootOpts(t *testing.T) {
	o := newRootOpts()
	assert.Same(t, os.Stdout, o.Out, "user output should default to stdout")
	assert.Empty(t, o.ConfigPath, "config path is filled after flag parsing")
}

func TestAddRootFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "copytree"}
	addRootFlags(cmd)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, ".copytree.yaml", configFlag.DefValue)
	assert.Equal(t, "c", configFlag.Shorthand)

	debugFlag := cmd.PersistentFlags().Lookup("debug")
	require.NotNil(t, debugFlag)
	assert.Equal(t, "false", debugFlag.DefValue)
	assert.Equal(t, "d", debugFlag.Shorthand)
}

func TestSetupLogging(t *testing.T) {
	oldDebug := debug
	oldLevel := zerolog.GlobalLevel()
	oldDefault := zerolog.DefaultContextLogger
	defer func() {
		debug = oldDebug
		zerolog.SetGlobalLevel(oldLevel)
		zerolog.DefaultContextLogger = oldDefault
	}()

	debug = true
	setupLogging()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	require.NotNil(t, zerolog.DefaultContextLogger)

	debug = false
	setupLogging()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
