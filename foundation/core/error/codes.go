// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the template compiler, the
//              template cache and the surrounding tooling.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-14 v0.2.0: Replaced platform codes with template compiler codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Template compiler
	CodeTemplateLexical   Code = "TEMPLATE_LEXICAL"
	CodeTemplateSyntax    Code = "TEMPLATE_SYNTAX"
	CodeTemplateStructure Code = "TEMPLATE_STRUCTURE"
	CodeTemplateLimit     Code = "TEMPLATE_LIMIT"

	// Storage
	CodeDatabaseError  Code = "DATABASE_ERROR"
	CodeDataCorruption Code = "DATA_CORRUPTION"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeTemplateLexical, CodeTemplateSyntax, CodeTemplateStructure, CodeTemplateLimit,
		CodeDatabaseError, CodeDataCorruption,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTemplateLexical, CodeTemplateSyntax, CodeTemplateStructure, CodeTemplateLimit:
		return "template"
	case CodeDatabaseError, CodeDataCorruption:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsTemplateError reports whether the code describes a template the author has to fix
func (c Code) IsTemplateError() bool {
	return c.Category() == "template"
}
