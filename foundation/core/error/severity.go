// File: severity.go
// Title: Error Severity Levels
// Description: Severity classification used to pick a log level for errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with four severity levels
// - 2026-10-14 v0.2.0: Severity mapping for template compiler codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks errors caused by the template author (bad markup)
	SeverityLow Severity = iota

	// SeverityMedium marks errors with a workaround (cache miss on corrupt entry)
	SeverityMedium

	// SeverityHigh marks errors that stop a component from working
	SeverityHigh

	// SeverityCritical marks errors that make the tool unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeTemplateLexical, CodeTemplateSyntax, CodeTemplateStructure, CodeTemplateLimit,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeDataCorruption:
		return SeverityMedium
	case CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
