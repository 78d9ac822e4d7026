/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep.go
Description: Sweep command implementation for the Akaylee Oracle. Fetches
real-world Lua sources from local directories and HTTP index pages, runs
every file through the recognizer expecting acceptance, and persists the
JSON report. A rejection here is a grammar finding, not a corpus problem.
*/

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-oracle/pkg/harness"
	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/utils"
)

// PerformSweep executes a corpus sweep over the configured sources
func PerformSweep(cmd *cobra.Command, args []string) error {
	fmt.Println("🌊 Akaylee Oracle - Corpus Sweep")
	fmt.Println("================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := NewOracleLogger()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	timeout := viper.GetDuration("fetch_timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var sources []interfaces.CorpusSource
	for _, dir := range viper.GetStringSlice("corpus_dirs") {
		sources = append(sources, harness.NewDirSource(dir, viper.GetString("pattern"), logger))
	}
	for _, url := range viper.GetStringSlice("index_urls") {
		sources = append(sources, harness.NewIndexSource(url, viper.GetString("suffix"), timeout, logger))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no corpus sources configured (use --corpus-dir or --index-url)")
	}

	table, err := BuildTable(logger)
	if err != nil {
		return err
	}
	oracle := harness.NewOracle(table, logger)
	h := harness.NewHarness(oracle, logger, harness.WithWorkers(viper.GetInt("workers")))

	report, err := h.SweepCorpus(context.Background(), sources)
	if err != nil {
		return fmt.Errorf("corpus sweep failed: %w", err)
	}

	fmt.Printf("Inputs:   %d\n", report.Total)
	fmt.Printf("Accepted: %d\n", report.Passed)
	fmt.Printf("Rejected: %d\n", report.Failed)
	for _, m := range report.Mismatches {
		fmt.Printf("  ❌ %s: reject at byte %d (state %s)\n", m.Case.Name, m.Run.Position, m.Run.State)
	}

	path, err := utils.WriteReport("sweep", cmd.Root().Version, report)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("\n📊 Report written to %s\n", path)

	if report.Failed > 0 {
		return fmt.Errorf("%d corpus input(s) rejected", report.Failed)
	}
	fmt.Println("✨ Whole corpus accepted!")
	return nil
}
