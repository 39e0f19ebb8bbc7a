package opts

import "io"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigPath string    // config file path from the --config flag
	Debug      bool      // verbose logging from the --debug flag
	Out        io.Writer // destination for user-facing output
}
