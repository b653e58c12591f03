package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/watch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// NewWatchCmd creates a new watch command
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH...",
		Short: "Watch directories and report debounced change notifications",
		Long: `Watch subscribes to each directory subtree and prints one line per
quiet period, however many raw filesystem events occurred during it.
Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ro := opts.FromContext(ctx)

			g, ctx := errgroup.WithContext(ctx)
			for _, path := range args {
				root, err := filepath.Abs(path)
				if err != nil {
					return errors.Errorf("resolving %s: %w", path, err)
				}

				sub, err := watch.New(ctx, watch.Options{
					Root:     root,
					Interval: ro.Config.DebounceInterval(),
				})
				if err != nil {
					return errors.Errorf("watching %s: %w", root, err)
				}

				g.Go(func() error {
					defer sub.Stop()
					for {
						select {
						case <-ctx.Done():
							return nil
						case <-sub.Changed():
							ro.Console.Infof("%s changed", root)
						case err := <-sub.Err():
							return err
						}
					}
				})
			}

			ro.Console.Infof("watching %d path(s), interrupt to stop", len(args))
			return g.Wait()
		},
	}
}
