// File: encode.go
// Title: xentpl AST Encodings
// Description: JSON marshalling with a type discriminator for tooling output
//              and a gob based binary encoding used by the template cache.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial JSON and binary encodings

package ast

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
)

// EncodingVersion changes whenever the binary layout of the tree changes
const EncodingVersion = 1

func init() {
	gob.RegisterName("xentpl.PlainText", &PlainText{})
	gob.RegisterName("xentpl.Tag", &Tag{})
	gob.RegisterName("xentpl.CurlyVar", &CurlyVar{})
	gob.RegisterName("xentpl.CurlyFunction", &CurlyFunction{})
	gob.RegisterName("xentpl.Literal", &Literal{})
	gob.RegisterName("xentpl.SimpleVariable", &SimpleVariable{})
	gob.RegisterName("xentpl.QuotedString", &QuotedString{})
}

type encodedTree struct {
	Version int
	Nodes   []Node
}

// Encode serialises a tree into a compact binary form
func Encode(nodes []Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(encodedTree{Version: EncodingVersion, Nodes: nodes}); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode restores a tree written by Encode
func Decode(data []byte) ([]Node, error) {
	var tree encodedTree
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if tree.Version != EncodingVersion {
		return nil, fmt.Errorf("decode tree: unsupported encoding version %d", tree.Version)
	}
	return tree.Nodes, nil
}

// JSON

func (p *PlainText) MarshalJSON() ([]byte, error) {
	type alias PlainText
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"plain_text", (*alias)(p)})
}

func (t *Tag) MarshalJSON() ([]byte, error) {
	type alias Tag
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"tag", (*alias)(t)})
}

func (c *CurlyVar) MarshalJSON() ([]byte, error) {
	type alias CurlyVar
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"curly_var", (*alias)(c)})
}

func (c *CurlyFunction) MarshalJSON() ([]byte, error) {
	type alias CurlyFunction
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"curly_function", (*alias)(c)})
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	type alias Literal
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"literal", (*alias)(l)})
}

func (s *SimpleVariable) MarshalJSON() ([]byte, error) {
	type alias SimpleVariable
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"simple_variable", (*alias)(s)})
}

func (q *QuotedString) MarshalJSON() ([]byte, error) {
	type alias QuotedString
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"quoted_string", (*alias)(q)})
}
