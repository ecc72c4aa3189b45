// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     version
// Description: Central version management for the compiler and its tools
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for all xentpl components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Compiler = "1.0.0" // lexer, grammar and tree shape
	CLI      = "1.0.0"
	Cache    = "1.0.0" // template cache schema
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "compiler":
		return Compiler
	case "cli":
		return CLI
	case "cache":
		return Cache
	default:
		return Platform
	}
}

// CompilerFingerprint identifies trees produced by this build. Cached trees
// with another fingerprint must be recompiled.
func CompilerFingerprint(encodingVersion int) string {
	return fmt.Sprintf("xentpl-%s/tree-%d", Compiler, encodingVersion)
}
