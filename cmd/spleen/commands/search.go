package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/search"
	"gitlab.com/tozd/go/errors"
)

// NewSearchCmd creates a new search command
func NewSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search PATTERN [ROOT]",
		Short: "Find entries whose name matches a glob pattern",
		Long: `Search walks ROOT (default: the configured default root, or the
current directory) depth-first and prints every file or directory whose
base name matches PATTERN. '*' matches any run of characters, '?' a
single character; matching is case-sensitive. Unreadable directories
are skipped, symlinked directories are never followed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ro := opts.FromContext(ctx)

			root := ro.Config.DefaultRoot
			if len(args) == 2 {
				root = args[1]
			}
			if root == "" {
				root = "."
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return errors.Errorf("resolving root: %w", err)
			}

			handle, err := search.Run(ctx, search.Request{
				Root:    root,
				Pattern: args[0],
				Ignore:  ro.Config.IgnorePatterns,
			})
			if err != nil {
				return errors.Errorf("starting search: %w", err)
			}
			defer handle.Stop()

			count := 0
			for match := range handle.Matches() {
				fmt.Fprintln(cmd.OutOrStdout(), match)
				count++
			}

			ro.Console.Successf("%d match(es)", count)
			return nil
		},
	}
}
