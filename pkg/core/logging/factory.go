// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from
//              configuration
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: json)

	// Primary output (default: stderr, stdout stays free for command output)
	Output io.Writer

	// Additional outputs (besides the primary output)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromGeneral derives a logger configuration from the [general] section
func FromGeneral(general config.GeneralConfig) LoggerConfig {
	return LoggerConfig{
		ServiceName: general.Name,
		Level:       general.LogLevel,
		Format:      general.LogFormat,
	}
}

// NewLogger creates a new foundation logger. Unknown levels fall back to
// info and unknown formats to JSON.
func NewLogger(cfg LoggerConfig) *xtlog.Logger {
	level, _ := xtlog.ParseLevel(cfg.Level)
	format, _ := xtlog.ParseFormat(cfg.Format)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return xtlog.NewWithConfig(xtlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *xtlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// OpenLogFile opens path for appending, creating parent directories. The
// caller closes the file.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, xterror.Wrap(err, "failed to create log directory").
			WithCode(xterror.CodeConfigError).
			WithOperation("logging.OpenLogFile").
			WithDetail("path", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, xterror.Wrap(err, "failed to open log file").
			WithCode(xterror.CodeConfigError).
			WithOperation("logging.OpenLogFile").
			WithDetail("path", path)
	}
	return f, nil
}
