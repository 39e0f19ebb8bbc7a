// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/walteh/copytree/cmd/copytree/commands"
)

func main() {
	ctx := context.Background()

	// Create root options, completed from flags once cobra has parsed them
	o := newRootOpts()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "copytree",
		Short: "A tool for copying directory trees with precise symlink handling",
		Long: `copytree duplicates directory trees into freshly created destinations.
Symbolic links are kept, rewritten, or resolved into real files according to
a per-job policy, and sources under git can be copied selectively so ignored
files never reach the destination.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			o.ConfigPath = configFile
			o.Debug = debug
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewStageCmd(o),
		commands.NewDetectCmd(o),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
