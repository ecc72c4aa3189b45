// Package log provides structured logging for xentpl.
//
// Package: log
// Title: xentpl Structured Logging
// Description: Levelled, structured logging with contextual fields, JSON and
//              text output, integration with the foundation error type and
//              timers for measuring compile durations.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-14 v0.2.0: Reduced to the synchronous core used by the template compiler
//
// Usage:
//
//	import xtlog "github.com/msto63/xentpl/foundation/core/log"
//
//	logger := xtlog.New().WithField("component", "compiler")
//	logger.Info("template compiled", xtlog.Fields{"title": "thread_view"})
//
//	timer := logger.StartTimer("compile")
//	defer timer.Stop()
//
// Loggers are immutable: every With* call returns a configured copy, so a
// logger can be shared between goroutines.
package log
