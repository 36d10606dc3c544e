package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csspurify"
	"github.com/yacobolo/csspurify/internal/purify"
)

var rootCmd = &cobra.Command{
	Use:   "csspurify <input> <output> [file...]",
	Short: "Remove unused CSS rules and minify the result",
	Long: `Read the stylesheet <input>, drop every selector that none of the content
files use, minify what remains and write it to <output> ("-" for stdout).
Content files may be paths or globs ("templates/**/*.html").
Selectors matching a whitelist glob are always kept.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runPurify(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress logs and reports (errors only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file (rotated)")

	f := rootCmd.Flags()
	f.Bool("minify", true, "Minify the output")
	f.StringSlice("whitelist", purify.DefaultWhitelist, "Glob patterns for selectors that are never removed")
	f.Bool("info", false, "Print size reduction and timing")
	f.Bool("rejected", false, "Print every removed selector")
	f.Bool("strict-html", false, "Match HTML content as a DOM instead of as words")
	f.Int("concurrency", csspurify.DefaultConcurrency, "Content files read in parallel")
	f.String("report-format", "text", "Report format: text|json|markdown")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// marshalArgs splits positional arguments into the stylesheet, the output
// path and the content files. Paths are not checked here.
func marshalArgs(args []string) (input, output string, content []string) {
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	if len(args) > 2 {
		content = args[2:]
	}
	return input, output, content
}

func runPurify(cmd *cobra.Command, args []string) error {
	input, output, content := marshalArgs(args)

	quiet := getBoolWithFallback("quiet", "quiet", false)
	logger := newLogger(cmd.ErrOrStderr(), LoggerConfig{
		Verbose: getBoolWithFallback("verbose", "verbose", false),
		Quiet:   quiet,
		LogFile: getStringWithFallback("log-file", "log-file", ""),
	})
	defer func() { _ = logger.Sync() }()

	toStdout := output == "-"
	if toStdout {
		output = ""
	}

	opts := buildOptions(output)
	opts.Logger = logger
	opts.ReportTo = cmd.ErrOrStderr()

	wantReport := (opts.Info || opts.Rejected) && !quiet
	format := purify.DetermineOutputFormat(getStringWithFallback("report-format", "purify.report-format", ""))
	reportConfig := purify.ReportConfig{Info: opts.Info, Rejected: opts.Rejected, UseColors: opts.Color}

	// The library prints text reports itself; structured ones are written below
	if quiet || format != purify.OutputText {
		opts.Info, opts.Rejected = false, false
	}

	result, err := csspurify.Purify(cmd.Context(), content, []string{input}, opts)
	if err != nil {
		return fmt.Errorf("purify failed: %w", err)
	}

	if toStdout {
		if _, err := cmd.OutOrStdout().Write(result.CSS); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if wantReport && format != purify.OutputText {
		return purify.WriteReport(cmd.ErrOrStderr(), result.Report, format, reportConfig)
	}

	return nil
}
