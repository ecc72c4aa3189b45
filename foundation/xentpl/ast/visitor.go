// File: visitor.go
// Title: xentpl AST Visitor Pattern Implementation
// Description: Implements the visitor pattern and depth-first traversal
//              helpers for template syntax trees.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-14 v0.2.0: Error returning visitor, Walk and Inspect

package ast

import (
	"errors"
)

// Visitor interface for traversing template nodes
type Visitor interface {
	VisitPlainText(text *PlainText) error
	VisitTag(tag *Tag) error
	VisitCurlyVar(v *CurlyVar) error
	VisitCurlyFunction(fn *CurlyFunction) error
}

// SkipChildren may be returned by a visit method to keep Walk from
// descending into the node's nested nodes.
var SkipChildren = errors.New("skip children")

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed it in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitPlainText(*PlainText) error         { return nil }
func (BaseVisitor) VisitTag(*Tag) error                     { return nil }
func (BaseVisitor) VisitCurlyVar(*CurlyVar) error           { return nil }
func (BaseVisitor) VisitCurlyFunction(*CurlyFunction) error { return nil }

func (p *PlainText) Accept(visitor Visitor) error     { return visitor.VisitPlainText(p) }
func (t *Tag) Accept(visitor Visitor) error           { return visitor.VisitTag(t) }
func (c *CurlyVar) Accept(visitor Visitor) error      { return visitor.VisitCurlyVar(c) }
func (c *CurlyFunction) Accept(visitor Visitor) error { return visitor.VisitCurlyFunction(c) }

// Walk visits nodes depth-first in source order. Expressions nested in
// attribute values, keys and arguments are visited before tag children.
// The first error other than SkipChildren stops the walk and is returned.
func Walk(visitor Visitor, nodes []Node) error {
	for _, n := range nodes {
		err := n.Accept(visitor)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := Walk(visitor, Nested(n)); err != nil {
			return err
		}
	}
	return nil
}

// Inspect calls fn for every node depth-first; returning false skips the
// node's nested nodes.
func Inspect(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if fn(n) {
			Inspect(Nested(n), fn)
		}
	}
}

// Nested returns the nodes directly contained in n, in source order
func Nested(n Node) []Node {
	var out []Node
	switch v := n.(type) {
	case *Tag:
		for _, attr := range v.Attributes {
			out = appendParts(out, attr.Value)
		}
		out = append(out, v.Children...)
	case *CurlyVar:
		for _, k := range v.Keys {
			if cv, ok := k.(*CurlyVar); ok {
				out = append(out, cv)
			}
		}
	case *CurlyFunction:
		for _, arg := range v.Arguments {
			switch a := arg.(type) {
			case *CurlyVar:
				out = append(out, a)
			case *CurlyFunction:
				out = append(out, a)
			case *QuotedString:
				out = appendParts(out, a)
			}
		}
	}
	return out
}

func appendParts(out []Node, q *QuotedString) []Node {
	if q == nil {
		return out
	}
	for _, p := range q.Parts {
		if n, ok := p.(Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// Collect returns every node of type T in the tree, depth-first
func Collect[T Node](nodes []Node) []T {
	var out []T
	Inspect(nodes, func(n Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}
