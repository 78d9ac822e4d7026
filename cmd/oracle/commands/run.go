/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Run command implementation for the Akaylee Oracle. Recognizes
files or a literal source string against the Lua grammar and reports the
verdict with the rejection position and state for triage.
*/

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-oracle/pkg/harness"
	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/lua"
)

// RunRecognize executes recognition runs over the command arguments
func RunRecognize(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := NewOracleLogger()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	table, err := BuildTable(logger)
	if err != nil {
		return err
	}

	opts := []harness.OracleOption{}
	if n := viper.GetInt("max_steps"); n > 0 {
		opts = append(opts, harness.WithMaxSteps(n))
	}
	if viper.GetBool("expression") {
		opts = append(opts, harness.WithEntryState(lua.ExpressionEntry()))
	}
	oracle := harness.NewOracle(table, logger, opts...)

	ctx := context.Background()
	rejected := 0

	runOne := func(name string, input []byte) error {
		record, err := oracle.Recognize(ctx, input)
		if err != nil {
			return err
		}
		if record.Verdict == interfaces.VerdictAccept {
			fmt.Printf("✅ %s: accept (%d bytes, %d steps)\n", name, record.InputSize, record.Steps)
			return nil
		}
		rejected++
		fmt.Printf("❌ %s: reject at byte %d (state %s)\n", name, record.Position, record.State)
		return nil
	}

	if literal := viper.GetString("source"); literal != "" {
		if err := runOne("<literal>", []byte(literal)); err != nil {
			return err
		}
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := runOne(path, data); err != nil {
			return err
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%d input(s) rejected", rejected)
	}
	return nil
}
