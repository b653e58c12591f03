package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/spleen/pkg/fsops"
)

// NewExtractCmd creates a new extract command
func NewExtractCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "extract ARCHIVE...",
		Short: "Extract zip and tar.gz archives",
		Long: `Extract unpacks each archive next to itself, or into --dest when
given. Entries that would escape the destination directory fail the
whole archive without writing anything outside it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), fsops.KindExtract, args, dest)
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "destination directory (default: next to each archive)")

	return cmd
}
