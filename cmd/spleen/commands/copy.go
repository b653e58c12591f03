package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/spleen/pkg/fsops"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy SOURCE... DEST",
		Short: "Copy files, directories and symlinks into a destination directory",
		Long: `Copy processes each source in order. Symbolic links are recreated as
links, directories are copied recursively preserving symlinks found
within, and regular files keep their permissions and modification time.
A failing item is reported and the batch continues with the next one.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, dest := args[:len(args)-1], args[len(args)-1]
			return runBatch(cmd.Context(), fsops.KindCopy, sources, dest)
		},
	}
}
