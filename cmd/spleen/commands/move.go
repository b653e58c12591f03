package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/spleen/pkg/fsops"
)

// NewMoveCmd creates a new move command
func NewMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move SOURCE... DEST",
		Short: "Move files and directories into a destination directory",
		Long: `Move renames each source into the destination. When source and
destination live on different volumes the engine falls back to
copy-then-delete on its own.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, dest := args[:len(args)-1], args[len(args)-1]
			return runBatch(cmd.Context(), fsops.KindMove, sources, dest)
		},
	}
}
