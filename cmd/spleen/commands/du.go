package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// NewDuCmd creates a new du command
func NewDuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "du [PATH]",
		Short: "Summarize a subtree: file count, directory count, total bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ro := opts.FromContext(ctx)

			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return errors.Errorf("resolving path: %w", err)
			}

			usage, err := fsops.DiskUsage(ctx, path)
			if err != nil {
				return errors.Errorf("summarizing %s: %w", path, err)
			}

			ro.Console.Infof("%s: %d file(s), %d dir(s), %d byte(s)",
				path, usage.Files, usage.Dirs, usage.Bytes)
			return nil
		},
	}
}
