// File: nodes.go
// Title: xentpl AST Node Definitions
// Description: Defines the node and value types of a parsed template:
//              plain text, tags, variable and function expressions, literals,
//              simple variables and quoted strings. Provides template-like
//              string representations.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-14 v0.2.0: Template node variants with closed marker interfaces

package ast

import (
	"strings"
)

// Node represents a top-level or child element of a template
type Node interface {
	// String returns a template-like representation of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) error

	// Pos returns the source line the node starts on (1-based)
	Pos() int

	node() // marker method
}

// Key is one indexing step of a variable expression: *Literal or *CurlyVar
type Key interface {
	String() string
	key() // marker method
}

// Argument is a function argument: *SimpleVariable, *Literal, *QuotedString,
// *CurlyVar or *CurlyFunction
type Argument interface {
	String() string
	argument() // marker method
}

// Part is a piece of a quoted string: *Literal, *CurlyVar or *CurlyFunction
type Part interface {
	String() string
	part() // marker method
}

// PlainText is literal template text
type PlainText struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// Tag is a <xen:name> element. Children is empty for self-closing tags.
type Tag struct {
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
	Children   []Node     `json:"children"`
	Line       int        `json:"line"`
}

// CurlyVar is a {$name...} expression; Keys are applied left to right
type CurlyVar struct {
	Name string `json:"name"`
	Keys []Key  `json:"keys"`
	Line int    `json:"line"`
}

// CurlyFunction is a {xen:name ...} expression
type CurlyFunction struct {
	Name      string     `json:"name"`
	Arguments []Argument `json:"arguments"`
	Line      int        `json:"line"`
}

// Literal is a bare or quoted piece of text
type Literal struct {
	Value string `json:"value"`
}

// SimpleVariable is a $name function argument; Name may be a dotted path
type SimpleVariable struct {
	Name string `json:"name"`
}

// QuotedString is a quoted value mixing literals and embedded expressions.
// No two consecutive parts are literals.
type QuotedString struct {
	Parts []Part `json:"parts"`
}

// Attribute is one name/value pair of a tag
type Attribute struct {
	Name  string        `json:"name"`
	Value *QuotedString `json:"value"`
}

// Attributes keeps tag attributes in source order
type Attributes []Attribute

// Get returns the value of the named attribute
func (a Attributes) Get(name string) (*QuotedString, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing attribute in place or appends it
func (a Attributes) Set(name string, value *QuotedString) Attributes {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attribute{Name: name, Value: value})
}

// Names returns the attribute names in source order
func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}
	return names
}

// Node implementations

func (p *PlainText) String() string { return p.Text }
func (p *PlainText) Pos() int       { return p.Line }
func (p *PlainText) node()          {}

func (t *Tag) String() string {
	var sb strings.Builder
	sb.WriteString("<xen:")
	sb.WriteString(t.Name)
	for _, attr := range t.Attributes {
		sb.WriteString(" ")
		sb.WriteString(attr.Name)
		sb.WriteString("=")
		sb.WriteString(attr.Value.String())
	}
	if len(t.Children) == 0 {
		sb.WriteString(" />")
		return sb.String()
	}
	sb.WriteString(">")
	for _, child := range t.Children {
		sb.WriteString(child.String())
	}
	sb.WriteString("</xen:")
	sb.WriteString(t.Name)
	sb.WriteString(">")
	return sb.String()
}
func (t *Tag) Pos() int { return t.Line }
func (t *Tag) node()    {}

func (c *CurlyVar) String() string {
	var sb strings.Builder
	sb.WriteString("{$")
	sb.WriteString(c.Name)
	for _, k := range c.Keys {
		sb.WriteString(".")
		sb.WriteString(k.String())
	}
	sb.WriteString("}")
	return sb.String()
}
func (c *CurlyVar) Pos() int  { return c.Line }
func (c *CurlyVar) node()     {}
func (c *CurlyVar) key()      {}
func (c *CurlyVar) argument() {}
func (c *CurlyVar) part()     {}

func (c *CurlyFunction) String() string {
	var sb strings.Builder
	sb.WriteString("{xen:")
	sb.WriteString(c.Name)
	for i, arg := range c.Arguments {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		if lit, ok := arg.(*Literal); ok && !isBareLiteral(lit.Value) {
			sb.WriteString((&QuotedString{Parts: []Part{lit}}).String())
			continue
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString("}")
	return sb.String()
}
func (c *CurlyFunction) Pos() int  { return c.Line }
func (c *CurlyFunction) node()     {}
func (c *CurlyFunction) argument() {}
func (c *CurlyFunction) part()     {}

// Value implementations

func (l *Literal) String() string { return l.Value }
func (l *Literal) key()           {}
func (l *Literal) argument()      {}
func (l *Literal) part()          {}

func (s *SimpleVariable) String() string { return "$" + s.Name }
func (s *SimpleVariable) argument()      {}

func (q *QuotedString) String() string {
	var inner strings.Builder
	for _, p := range q.Parts {
		inner.WriteString(p.String())
	}
	quote := `"`
	if strings.Contains(inner.String(), `"`) {
		quote = "'"
	}
	return quote + inner.String() + quote
}
func (q *QuotedString) argument() {}

// Text returns the concatenated literal parts, ignoring expressions
func (q *QuotedString) Text() string {
	var sb strings.Builder
	for _, p := range q.Parts {
		if lit, ok := p.(*Literal); ok {
			sb.WriteString(lit.Value)
		}
	}
	return sb.String()
}

// IsStatic reports whether the quoted string contains no expressions
func (q *QuotedString) IsStatic() bool {
	for _, p := range q.Parts {
		if _, ok := p.(*Literal); !ok {
			return false
		}
	}
	return true
}

// isBareLiteral reports whether v can be written unquoted as a function argument
func isBareLiteral(v string) bool {
	if v == "" {
		return false
	}
	return !strings.ContainsAny(v, " \t\r\n,{}\"'$")
}
