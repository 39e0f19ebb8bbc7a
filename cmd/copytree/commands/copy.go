package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/copytree/cmd/copytree/opts"
	"github.com/walteh/copytree/pkg/config"
	"github.com/walteh/copytree/pkg/copier"
	"github.com/walteh/copytree/pkg/status"
	"github.com/walteh/copytree/pkg/vcs"
	"github.com/walteh/copytree/pkg/yamlutil"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	var (
		parallel    bool
		printConfig bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the trees defined in the config file",
		Long: `Copy runs every job in the config file. For each job it:
1. Creates the destination directory, which must not exist yet
2. Selects files, either the whole tree or only what git reports
3. Copies directories, files, and symbolic links per the job's policy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

			cfg, err := config.Load(ctx, o.ConfigPath)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			if printConfig {
				return yamlutil.Store(o.Out, cfg, yamlutil.Options{Pretty: true})
			}

			if parallel || cfg.Parallel {
				wg, gctx := errgroup.WithContext(ctx)
				for _, job := range cfg.Jobs {
					job := job
					wg.Go(func() error {
						return runJob(gctx, o, job)
					})
				}
				return wg.Wait()
			}

			for _, job := range cfg.Jobs {
				if err := runJob(ctx, o, job); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&parallel, "parallel", false, "run jobs concurrently")
	cmd.Flags().BoolVar(&printConfig, "print-config", false, "print the resolved config as YAML and exit")

	return cmd
}

// runJob performs one copy job and reports its progress.
func runJob(ctx context.Context, o *opts.RootOpts, job config.Job) error {
	log := zerolog.Ctx(ctx).With().Str("job", job.Name).Logger()
	ctx = log.WithContext(ctx)

	reporter := status.NewReporter(ctx, o.Out)
	reporter.StartJob(job.Name, job.Source, job.Destination)

	console := status.NewConsole(o.Out)
	copts := copier.Options{
		Policy:   job.Policy.Policy(),
		Observer: console,
		Ignore:   job.Ignore,
		GitPath:  job.GitPath,
	}

	mode := job.VCS
	if mode == config.VCSAuto {
		mode = config.VCSNone
		if vcs.Detect(ctx, job.Source, job.GitPath) == vcs.KindGit {
			mode = config.VCSGit
		}
	}

	var c *copier.Copier
	if mode == config.VCSGit {
		c = copier.NewGit(copts)
	} else {
		c = copier.New(copts)
	}

	if err := c.Copy(ctx, job.Source, job.Destination, job.ExcludeRoot...); err != nil {
		reporter.JobFailed(job.Name, err)
		return errors.Errorf("job %q: %w", job.Name, err)
	}

	reporter.JobDone(job.Name, console.Summary())
	return nil
}
