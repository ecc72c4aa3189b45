// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it on stop.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with checkpoints
// - 2026-10-14 v0.2.0: Stop and StopWithError only

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the timer completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs "<operation> completed". A second call is a no-op.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	t.fields["operation"] = t.operation
	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, elapsed, t.fields)
	}
	return elapsed
}

// StopWithError stops the timer and logs "<operation> failed" at warn level
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	t.fields["operation"] = t.operation
	if t.logger != nil {
		t.logger.log(LevelWarn, t.operation+" failed", err, elapsed, t.fields)
	}
	return elapsed
}

// IsRunning reports whether the timer has not been stopped yet
func (t *Timer) IsRunning() bool {
	return !t.stopped
}
