/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for the logging system. Tests logger creation, config
validation, formatting with stable field ordering, and the oracle-specific
logging methods.
*/

package logging_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-oracle/pkg/logging"
)

func TestLoggerCreation(t *testing.T) {
	// Default configuration
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	defer logger.Close()

	// Custom configuration
	config := &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: t.TempDir(),
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: true,
		Caller:    true,
		Colors:    false,
	}
	custom, err := logging.NewLogger(config)
	require.NoError(t, err)
	assert.NotNil(t, custom)
	defer custom.Close()
}

func TestLoggerConfigValidation(t *testing.T) {
	valid := &logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatCustom,
		OutputDir: "./logs",
		MaxFiles:  10,
		MaxSize:   1024,
	}
	assert.NoError(t, valid.Validate())

	noDir := *valid
	noDir.OutputDir = ""
	assert.Error(t, noDir.Validate())

	badFormat := *valid
	badFormat.Format = "xml"
	assert.Error(t, badFormat.Validate())

	badLevel := *valid
	badLevel.Level = "loud"
	assert.Error(t, badLevel.Validate())

	badSize := *valid
	badSize.MaxSize = 0
	assert.Error(t, badSize.Validate())
}

func TestOracleLoggingMethods(t *testing.T) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatText,
		OutputDir: t.TempDir(),
		MaxFiles:  3,
		MaxSize:   1024 * 1024,
	})
	require.NoError(t, err)
	defer logger.Close()

	// These must not panic or block; output goes to the log file.
	logger.LogTableBuild("lua", 500, 120000, 800, 25*time.Millisecond)
	logger.LogRun("run-1", true, 42, 100, time.Millisecond)
	logger.LogReject("run-2", "expression", 7, map[string]interface{}{"input_size": 10})
	logger.LogReject("run-3", "statement", 0, nil)
	logger.LogVerdictMismatch("case-1", true, false, 3)
	logger.LogCorpusFetch("dir:/tmp/corpus", 10, 2, nil)
	logger.LogConformance(100, 99, 1, time.Second)
	logger.LogConformance(100, 100, 0, time.Second)

	logger.Debug("debug", nil)
	logger.Info("info", map[string]interface{}{"k": "v"})
	logger.Warning("warning", nil)
	logger.Error("error", nil)
}

func TestCustomFormatter(t *testing.T) {
	formatter := &logging.CustomFormatter{
		Timestamp: false,
		Caller:    false,
		Colors:    false,
	}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.InfoLevel,
		Message: "Input recognized",
		Data: logrus.Fields{
			"position": 4,
			"accepted": true,
		},
		Time: time.Now(),
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "Input recognized")
	// Fields render sorted by key for diffable output.
	accepted := strings.Index(line, "accepted")
	position := strings.Index(line, "position")
	require.GreaterOrEqual(t, accepted, 0)
	require.GreaterOrEqual(t, position, 0)
	assert.Less(t, accepted, position)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestCustomFormatterColors(t *testing.T) {
	formatter := &logging.CustomFormatter{Colors: true}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.ErrorLevel,
		Message: "Verdict mismatch",
		Time:    time.Now(),
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\033[31m") // errors render red
}
