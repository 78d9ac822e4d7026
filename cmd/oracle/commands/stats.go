/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Stats command implementation for the Akaylee Oracle. Assembles
the Lua recognition table and prints its size statistics, optionally as JSON
for tooling.
*/

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PerformStats prints statistics for the assembled recognition table
func PerformStats(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	table, err := BuildTable(nil)
	if err != nil {
		return err
	}
	stats := table.Stats()

	if viper.GetBool("stats_json") {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("📈 Akaylee Oracle - Table Statistics")
	fmt.Println("====================================")
	fmt.Printf("Table:         %s\n", stats.Name)
	fmt.Printf("States:        %d\n", stats.States)
	fmt.Printf("Stack symbols: %d\n", stats.StackSymbols)
	fmt.Printf("Transitions:   %d\n", stats.Transitions)
	fmt.Printf("Wildcards:     %d\n", stats.Wildcards)
	return nil
}
