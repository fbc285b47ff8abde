// Package cmd defines the command-line surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/community-of-python/redos-linter/config"
	"github.com/community-of-python/redos-linter/extractor"
	"github.com/community-of-python/redos-linter/logger"
	"github.com/community-of-python/redos-linter/oracle"
	"github.com/community-of-python/redos-linter/report"
	"github.com/community-of-python/redos-linter/runner"
)

var (
	cfgFile   string
	sarifPath string
	logLevel  string

	rootCmd = &cobra.Command{
		Use:   "redos-linter <path>...",
		Short: "Detects regular expressions vulnerable to catastrophic backtracking (ReDoS).",
		Long: `redos-linter statically scans Python sources for literal regular
expressions passed to the re module and reports which ones an external
checker judges vulnerable to catastrophic backtracking, with the exact
location and a concrete attack string for each finding.`,
		Args:                  cobra.MinimumNArgs(1),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultPath+")")
	rootCmd.Flags().StringVar(&sarifPath, "sarif", "", "also write a SARIF report to the given path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command. A completed scan exits 0 regardless of
// findings; only setup and oracle failures are fatal.
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	log := logger.New(cfg)

	client, err := oracle.NewDenoClient(cfg.Oracle, log)
	if err != nil {
		return err
	}

	opts := report.Options{
		Interactive:   isatty.IsTerminal(os.Stdout.Fd()),
		ColorDisabled: os.Getenv("NO_COLOR") != "",
	}
	renderer := report.NewRenderer(os.Stdout, opts)

	r := runner.New(extractor.New(), client, renderer, log, sarifPath)
	_, err = r.Run(cmd.Context(), args)
	return err
}
