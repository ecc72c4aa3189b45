// Package error provides the structured error type used across xentpl.
//
// Package: error
// Title: xentpl Structured Errors
// Description: Errors carry a stable code, a severity, free-form details and an
//              optional message key with arguments so that callers can render
//              localised text without parsing error strings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-14 v0.2.0: Template compiler codes, dropped stack traces and pooling
//
// Usage:
//
//	import xterror "github.com/msto63/xentpl/foundation/core/error"
//
//	err := xterror.New("tag never closed").
//		WithCode(xterror.CodeTemplateStructure).
//		WithMessage("template_compiler.tag_never_closed", map[string]interface{}{"tag": "foo"})
package error
