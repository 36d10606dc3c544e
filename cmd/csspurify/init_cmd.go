package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csspurify.yaml config file",
	Long:  `Create a .csspurify.yaml configuration file in the current directory with the default purify options.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# csspurify configuration

# Shared settings
verbose: false
quiet: false
color: false
log-file: ""

# Purify settings
purify:
  minify: true
  whitelist:
    - "*cgit*"
    - "*fa-*"
  info: false
  rejected: false
  strict-html: false       # HTML content is matched as a DOM only
  concurrency: 8           # content files read in parallel
  report-format: text      # text | json | markdown
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
