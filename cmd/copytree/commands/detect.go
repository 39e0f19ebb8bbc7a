package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/copytree/cmd/copytree/opts"
	"github.com/walteh/copytree/pkg/vcs"
)

// NewDetectCmd creates a new detect command
func NewDetectCmd(o *opts.RootOpts) *cobra.Command {
	var gitPath string

	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Report which version control system manages a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "detect").Logger().WithContext(ctx)

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			kind := vcs.Detect(ctx, dir, gitPath)
			fmt.Fprintln(o.Out, string(kind))
			return nil
		},
	}

	cmd.Flags().StringVar(&gitPath, "git-path", "git", "path to the git executable")

	return cmd
}
