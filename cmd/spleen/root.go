package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/spleen/cmd/spleen/commands"
	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/config"
	"github.com/walteh/spleen/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:  cfg,
		Console: log.New(os.Stdout, level),
	}, nil
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// NewRootCmd assembles the spleen CLI
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "spleen",
		Short:         "Background engine of the spleen file manager",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".spleen.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging()

		ro, err := newRootOpts(cmd.Context())
		if err != nil {
			return err
		}
		cmd.SetContext(opts.NewContext(cmd.Context(), ro))
		return nil
	}

	cmd.AddCommand(
		commands.NewCopyCmd(),
		commands.NewMoveCmd(),
		commands.NewDeleteCmd(),
		commands.NewExtractCmd(),
		commands.NewSearchCmd(),
		commands.NewWatchCmd(),
		commands.NewDuCmd(),
	)

	return cmd
}
