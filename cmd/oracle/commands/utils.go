/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Oracle commands. Provides common
configuration loading, logger construction, and table assembly used across
all command implementations.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/logging"
	"github.com/kleascm/akaylee-oracle/pkg/lua"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// NewOracleLogger builds the oracle logger from the bound configuration
func NewOracleLogger() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    !viper.GetBool("json_logs"),
	}
	if viper.GetBool("json_logs") {
		config.Format = logging.LogFormatJSON
	}
	return logging.NewLogger(config)
}

// BuildTable assembles the Lua recognition table and logs its statistics
func BuildTable(logger *logging.Logger) (*automaton.Table, error) {
	start := time.Now()
	table, err := lua.Grammar()
	if err != nil {
		return nil, fmt.Errorf("failed to build recognition table: %w", err)
	}
	if logger != nil {
		stats := table.Stats()
		logger.LogTableBuild(table.Name(), stats.States, stats.Transitions, stats.Wildcards, time.Since(start))
	}
	return table, nil
}
