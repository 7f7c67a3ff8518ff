package main

import (
	"github.com/spf13/cobra"
)

const usageLine = "Usage: webstyle <source_folder> <output_folder>"

var rootCmd = &cobra.Command{
	Use:   "webstyle [source_folder output_folder]",
	Short: "Build utility-first CSS frameworks from token manifests",
	Long: `Assemble one CSS file per project: design tokens in a :root block,
generated utility classes, color classes and the project's own fragments.

With no arguments, projects are read from src/ and written to build/.`,
	Args: sourceOutputArgs,
	// Default behavior: run build when no subcommand is given.
	// We must call loadConfig here because PreRunE of buildCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")

	addBuildFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// sourceOutputArgs accepts either no positional argument or exactly a
// source and a destination folder.
func sourceOutputArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return usageError{}
	}
	return nil
}
