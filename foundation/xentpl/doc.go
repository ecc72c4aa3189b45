// File: doc.go
// Title: xentpl Package Documentation
// Description: Front end of the xentpl template language: compiling template
//              source into syntax trees and localising compile errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial package documentation

/*
Package xentpl compiles xentpl templates into syntax trees.

Templates mix plain text with three kinds of markup:

	<xen:if is="{$visitor.user_id}">...</xen:if>   tags with attributes
	{$thread.title} {$list.{$index}}               variable expressions
	{xen:phrase welcome, $name, "x{$y}"}           function expressions

Compiling runs the stacked-state lexer and the shift-reduce parser of
package parser and returns the []ast.Node tree:

	c, err := xentpl.New(xentpl.Options{})
	tree, err := c.Compile("thread_view", source)

A Compiler is safe for concurrent use; every call gets its own parser.
Failures are *error.Error values carrying a template code, the title and a
phrase key, and the underlying *parser.Error is reachable with errors.As.
Localize renders them with the embedded English and German phrases.
*/
package xentpl
