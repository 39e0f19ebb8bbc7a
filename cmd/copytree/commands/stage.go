package commands

import (
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copytree/cmd/copytree/opts"
	"github.com/walteh/copytree/pkg/copier"
	"github.com/walteh/copytree/pkg/staging"
	"github.com/walteh/copytree/pkg/vcs"
)

// NewStageCmd creates a new stage command
func NewStageCmd(o *opts.RootOpts) *cobra.Command {
	var (
		container string
		useGit    bool
	)

	cmd := &cobra.Command{
		Use:   "stage <source> <namespace> <name> -- <command> [args...]",
		Short: "Copy a tree into a scratch layout and run a command inside it",
		Long: `Stage copies the source tree to <tmp>/<container>/<namespace>/<name> under
a fresh temporary root, runs the given command with its working directory
set to the staged tree, and removes the temporary root afterwards. The
command sees the locations in COPYTREE_STAGE_ROOT and COPYTREE_STAGED_DIR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "stage").Logger().WithContext(ctx)

			if cmd.ArgsLenAtDash() != 3 || len(args) < 4 {
				return errors.New("usage: stage <source> <namespace> <name> -- <command> [args...]")
			}
			source, namespace, name := args[0], args[1], args[2]
			argv := args[3:]

			copts := copier.Options{Policy: copier.DefaultPolicy()}
			var c *copier.Copier
			if useGit || vcs.Detect(ctx, source, "git") == vcs.KindGit {
				c = copier.NewGit(copts)
			} else {
				c = copier.New(copts)
			}

			stager, err := staging.New(staging.Options{
				Copier:    c,
				Container: container,
			})
			if err != nil {
				return err
			}

			return stager.Run(ctx, source, namespace, name, func(ctx context.Context, root, dir string) error {
				child := exec.CommandContext(ctx, argv[0], argv[1:]...)
				child.Dir = dir
				child.Stdin = os.Stdin
				child.Stdout = os.Stdout
				child.Stderr = os.Stderr
				child.Env = append(os.Environ(),
					"COPYTREE_STAGE_ROOT="+root,
					"COPYTREE_STAGED_DIR="+dir,
				)
				if err := child.Run(); err != nil {
					return errors.Errorf("running %q: %w", argv[0], err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&container, "container", staging.DefaultContainer, "layout prefix between the scratch root and the namespace")
	cmd.Flags().BoolVar(&useGit, "git", false, "copy only files tracked or not ignored by git")

	return cmd
}
