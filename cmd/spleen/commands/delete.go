package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/spleen/pkg/fsops"
)

// NewDeleteCmd creates a new delete command
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PATH...",
		Short: "Delete files, directories and symlinks",
		Long: `Delete removes each path in order. Real directories are removed
recursively; a symlink to a directory only loses the link, never the
directory it points to.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), fsops.KindDelete, args, "")
		},
	}
}
