// File: print.go
// Title: xentpl AST Tree Printer
// Description: Writes an indented, human readable dump of a syntax tree.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial tree printer

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented dump of nodes to w
func Print(w io.Writer, nodes []Node) error {
	p := &printer{w: w}
	for _, n := range nodes {
		p.node("", n)
	}
	return p.err
}

// Sprint returns the dump produced by Print
func Sprint(nodes []Node) string {
	var sb strings.Builder
	_ = Print(&sb, nodes)
	return sb.String()
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) node(prefix string, n Node) {
	switch v := n.(type) {
	case *PlainText:
		p.line("%sPlainText %q line=%d", prefix, v.Text, v.Line)
	case *Tag:
		p.line("%sTag %q line=%d", prefix, v.Name, v.Line)
		p.indent++
		for _, attr := range v.Attributes {
			p.quoted("@"+attr.Name+" ", attr.Value)
		}
		for _, child := range v.Children {
			p.node("", child)
		}
		p.indent--
	case *CurlyVar:
		p.line("%sCurlyVar %q line=%d", prefix, v.Name, v.Line)
		p.indent++
		for _, k := range v.Keys {
			switch key := k.(type) {
			case *Literal:
				p.line("key Literal %q", key.Value)
			case *CurlyVar:
				p.node("key ", key)
			}
		}
		p.indent--
	case *CurlyFunction:
		p.line("%sCurlyFunction %q line=%d", prefix, v.Name, v.Line)
		p.indent++
		for _, arg := range v.Arguments {
			p.argument(arg)
		}
		p.indent--
	}
}

func (p *printer) argument(arg Argument) {
	switch a := arg.(type) {
	case *SimpleVariable:
		p.line("arg SimpleVariable %q", a.Name)
	case *Literal:
		p.line("arg Literal %q", a.Value)
	case *QuotedString:
		p.quoted("arg ", a)
	case Node:
		p.node("arg ", a)
	}
}

func (p *printer) quoted(prefix string, q *QuotedString) {
	p.line("%sQuotedString", prefix)
	if q == nil {
		return
	}
	p.indent++
	for _, part := range q.Parts {
		switch v := part.(type) {
		case *Literal:
			p.line("Literal %q", v.Value)
		case Node:
			p.node("", v)
		}
	}
	p.indent--
}
