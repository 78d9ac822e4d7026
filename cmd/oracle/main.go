/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Oracle. Provides
commands for recognizing Lua sources, sweeping corpora, running conformance
case sets, and inspecting the assembled recognition table, with configuration
management and advanced logging capabilities.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-oracle/cmd/oracle/commands"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64

	// Run configuration
	sourceLiteral string
	expression    bool
	maxSteps      int

	// Sweep configuration
	corpusDirs   []string
	indexURLs    []string
	pattern      string
	suffix       string
	fetchTimeout time.Duration
	workers      int

	// Conformance configuration
	casesDir string

	// Stats configuration
	statsJSON bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "akaylee-oracle",
		Short: "Akaylee Oracle - Deterministic one-stack Lua grammar recognizer",
		Long: `Akaylee Oracle is a deterministic pushdown recognizer for the Lua grammar.
It answers one question per input: does this byte string belong to the
language. It reports the exact position and state of every rejection,
which makes it usable as a ground-truth oracle for fuzzing harnesses and
conformance suites.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Bind persistent flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))

	// Add run command
	runCmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Recognize Lua source files or a literal string",
		Long: `Run one or more inputs through the recognizer. Each input gets an
independent run with its own verdict; rejections report the byte position
and automaton state where recognition stopped.`,
		RunE: commands.RunRecognize,
	}

	runCmd.Flags().StringVar(&sourceLiteral, "source", "", "Literal Lua source to recognize")
	runCmd.Flags().BoolVar(&expression, "expression", false, "Recognize a single expression instead of a chunk")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum automaton steps per run (0 = unlimited)")

	viper.BindPFlag("source", runCmd.Flags().Lookup("source"))
	viper.BindPFlag("expression", runCmd.Flags().Lookup("expression"))
	viper.BindPFlag("max_steps", runCmd.Flags().Lookup("max-steps"))

	rootCmd.AddCommand(runCmd)

	// Add conformance command
	conformanceCmd := &cobra.Command{
		Use:   "conformance",
		Short: "Run a conformance case set against the recognizer",
		Long: `Sweep a case directory through the recognizer and compare verdicts against
expectations. The directory holds accept/ and reject/ subdirectories; every
file under accept/ must be accepted and every file under reject/ rejected.
Writes a timestamped JSON report to the metrics directory.`,
		RunE: commands.PerformConformance,
	}

	conformanceCmd.Flags().StringVar(&casesDir, "cases", "./cases", "Directory with accept/ and reject/ case subdirectories")
	conformanceCmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = auto-detect)")

	viper.BindPFlag("cases_dir", conformanceCmd.Flags().Lookup("cases"))
	viper.BindPFlag("workers", conformanceCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(conformanceCmd)

	// Add sweep command
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep a corpus of real-world Lua sources",
		Long: `Fetch Lua sources from local directories and HTTP index pages, run each
file through the recognizer, and expect whole-file acceptance. Inputs are
deduplicated by content hash. Writes a timestamped JSON report to the
metrics directory.`,
		RunE: commands.PerformSweep,
	}

	sweepCmd.Flags().StringSliceVar(&corpusDirs, "corpus-dir", []string{}, "Local directories containing corpus files")
	sweepCmd.Flags().StringSliceVar(&indexURLs, "index-url", []string{}, "HTTP index pages to scrape for corpus links")
	sweepCmd.Flags().StringVar(&pattern, "pattern", "*.lua", "Glob matched against local file names")
	sweepCmd.Flags().StringVar(&suffix, "suffix", ".lua", "Suffix matched against scraped link paths")
	sweepCmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", 30*time.Second, "Timeout for corpus HTTP requests")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = auto-detect)")

	viper.BindPFlag("corpus_dirs", sweepCmd.Flags().Lookup("corpus-dir"))
	viper.BindPFlag("index_urls", sweepCmd.Flags().Lookup("index-url"))
	viper.BindPFlag("pattern", sweepCmd.Flags().Lookup("pattern"))
	viper.BindPFlag("suffix", sweepCmd.Flags().Lookup("suffix"))
	viper.BindPFlag("fetch_timeout", sweepCmd.Flags().Lookup("fetch-timeout"))
	viper.BindPFlag("workers", sweepCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(sweepCmd)

	// Add stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for the assembled recognition table",
		RunE:  commands.PerformStats,
	}

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
	viper.BindPFlag("stats_json", statsCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(statsCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
