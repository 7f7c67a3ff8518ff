package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	webstyle "github.com/0kibob/webstyle-framework"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source_folder output_folder]",
	Short: "Build, then rebuild whenever the source folder changes",
	Args:  sourceOutputArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntP("jobs", "j", 1, "Number of projects built in parallel")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := buildOptions(args)

	logger, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	onBuild := func(result *webstyle.BuildResult, err error) {
		if err != nil {
			logger.Error("build failed", zap.Error(err))
			return
		}
		if !opts.Quiet {
			printBuildResult(w, result, opts)
			fmt.Fprintln(w)
		}
	}

	logger.Info("watching", zap.String("source", opts.Source), zap.String("destination", opts.Destination))
	if err := webstyle.Watch(ctx, opts.libraryConfig(logger), onBuild); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
