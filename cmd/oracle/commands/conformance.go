/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: conformance.go
Description: Conformance command implementation for the Akaylee Oracle. Loads
a case directory split into accept/ and reject/ subdirectories, sweeps it
through the recognizer on a worker pool, and persists the JSON report.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-oracle/pkg/harness"
	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/utils"
)

// PerformConformance executes a conformance sweep over a case directory
func PerformConformance(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Oracle - Conformance Sweep")
	fmt.Println("=====================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := NewOracleLogger()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	casesDir := viper.GetString("cases_dir")
	cases, err := loadCases(casesDir)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no cases found under %s (expected accept/ and reject/ subdirectories)", casesDir)
	}

	table, err := BuildTable(logger)
	if err != nil {
		return err
	}
	oracle := harness.NewOracle(table, logger)
	h := harness.NewHarness(oracle, logger, harness.WithWorkers(viper.GetInt("workers")))

	report, err := h.RunCases(context.Background(), cases)
	if err != nil {
		return fmt.Errorf("conformance sweep failed: %w", err)
	}

	fmt.Printf("Cases:  %d\n", report.Total)
	fmt.Printf("Passed: %d\n", report.Passed)
	fmt.Printf("Failed: %d\n", report.Failed)
	for _, m := range report.Mismatches {
		fmt.Printf("  ❌ %s: expected accept=%v, got %s (position %d, state %s)\n",
			m.Case.Name, m.Case.Expected, m.Run.Verdict, m.Run.Position, m.Run.State)
	}

	path, err := utils.WriteReport("conformance", cmd.Root().Version, report)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("\n📊 Report written to %s\n", path)

	if report.Failed > 0 {
		return fmt.Errorf("%d conformance case(s) failed", report.Failed)
	}
	fmt.Println("✨ All conformance cases passed!")
	return nil
}

// loadCases reads accept/ and reject/ subdirectories into conformance cases.
// Every file under accept/ must be accepted, every file under reject/ must
// be rejected.
func loadCases(dir string) ([]interfaces.ConformanceCase, error) {
	var cases []interfaces.ConformanceCase
	for _, group := range []struct {
		sub      string
		expected bool
	}{
		{"accept", true},
		{"reject", false},
	} {
		root := filepath.Join(dir, group.sub)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read case %s: %w", path, err)
			}
			cases = append(cases, interfaces.ConformanceCase{
				Name:     filepath.ToSlash(filepath.Join(group.sub, info.Name())),
				Input:    data,
				Expected: group.expected,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return cases, nil
}
