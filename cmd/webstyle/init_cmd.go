package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .webstyle.yaml config file",
	Long:  `Create a .webstyle.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# webstyle configuration
# Docs: https://github.com/0kibob/webstyle-framework

# Shared settings
verbose: false
quiet: false
color: false

# Build settings (positional arguments override source and destination)
build:
  source: src/
  destination: build/
  jobs: 1
  strict: false

# Check settings
check:
  output-format: issues    # issues | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
