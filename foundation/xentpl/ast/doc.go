// File: doc.go
// Title: xentpl Abstract Syntax Tree Package Documentation
// Description: Defines the syntax tree produced by the template parser,
//              visitor based traversal, tree dumps and encodings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2026-10-14 v0.2.0: Template tree nodes replace command nodes

/*
Package ast defines the syntax tree of xentpl templates.

A parsed template is a []Node. Four node variants exist:

  • PlainText: literal text between markup
  • Tag: a <xen:name> element with ordered attributes and children
  • CurlyVar: a {$name.key.{$dynamic}} variable expression
  • CurlyFunction: a {xen:name arg, ...} function expression

Variable keys, function arguments and the parts of quoted strings are
restricted to the variants listed on the Key, Argument and Part interfaces.
Trees are built once by the parser and never modified afterwards.

Walk and Inspect traverse a tree; Print writes an indented dump; the nodes
marshal to JSON with a "type" discriminator; Encode and Decode provide a
compact binary form for caches.
*/
package ast
