// File: errors.go
// Title: xentpl Parser Error Type
// Description: Defines the single error type raised by the lexer and the
//              parser. Every error carries a stable kind, the source line and
//              structured parameters so callers can localise the message.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: ParseError with position and message
// - 2026-10-14 v0.2.0: Error kinds and phrase keys for template compilation

package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a compile failure
type ErrorKind int

const (
	// KindLexical: input not recognised in the current lexer state
	KindLexical ErrorKind = iota
	// KindUnterminated: input ended inside a tag, quote or expression
	KindUnterminated
	// KindSyntax: token rejected by the parse tables
	KindSyntax
	// KindTagCloseUnexpected: close tag without any open tag
	KindTagCloseUnexpected
	// KindTagCloseMismatch: close tag name differs from the innermost open tag
	KindTagCloseMismatch
	// KindTagNeverClosed: input ended with open tags
	KindTagNeverClosed
	// KindStackOverflow: nesting exceeded the configured depth
	KindStackOverflow
	// KindInputTooLong: input exceeded the configured length
	KindInputTooLong
)

// String returns a short name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindUnterminated:
		return "unterminated"
	case KindSyntax:
		return "syntax"
	case KindTagCloseUnexpected:
		return "tag_close_unexpected"
	case KindTagCloseMismatch:
		return "tag_close_mismatch"
	case KindTagNeverClosed:
		return "tag_never_closed"
	case KindStackOverflow:
		return "stack_overflow"
	case KindInputTooLong:
		return "input_too_long"
	default:
		return "unknown"
	}
}

// MessageKey returns the phrase key used to localise errors of this kind
func (k ErrorKind) MessageKey() string {
	switch k {
	case KindLexical:
		return "template_compiler.unrecognized_input"
	case KindUnterminated:
		return "template_compiler.unexpected_end"
	case KindSyntax:
		return "template_compiler.syntax_error"
	case KindTagCloseUnexpected:
		return "template_compiler.tag_close_with_none_expected"
	case KindTagCloseMismatch:
		return "template_compiler.tag_close_does_not_match_expected_tag"
	case KindTagNeverClosed:
		return "template_compiler.tag_never_closed"
	case KindStackOverflow:
		return "template_compiler.stack_overflow"
	case KindInputTooLong:
		return "template_compiler.input_too_long"
	default:
		return "template_compiler.unknown_error"
	}
}

// Error is returned for every lexical, syntactic and structural failure
type Error struct {
	Kind     ErrorKind
	Line     int      // 1-based source line
	Tag      string   // tag involved in structural errors
	Expected []string // accepted token kinds, or the expected tag name
	Found    string   // offending token kind or lexer state
	Near     string   // input excerpt or token value
	Limit    int      // configured limit for overflow and length errors
	Size     int      // input size for length errors
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindLexical:
		return fmt.Sprintf("line %d: unrecognized input near %q", e.Line, e.Near)
	case KindUnterminated:
		return fmt.Sprintf("line %d: template ended inside %s", e.Line, e.Found)
	case KindSyntax:
		msg := fmt.Sprintf("line %d: syntax error: unexpected %s", e.Line, e.Found)
		if e.Near != "" {
			msg += fmt.Sprintf(" %q", e.Near)
		}
		if len(e.Expected) > 0 {
			msg += ", expected " + strings.Join(e.Expected, ", ")
		}
		return msg
	case KindTagCloseUnexpected:
		return fmt.Sprintf("line %d: tag close with none expected: </xen:%s>", e.Line, e.Tag)
	case KindTagCloseMismatch:
		return fmt.Sprintf("line %d: tag close does not match expected tag: </xen:%s>, expected </xen:%s>",
			e.Line, e.Tag, strings.Join(e.Expected, ""))
	case KindTagNeverClosed:
		return fmt.Sprintf("line %d: tag never closed: <xen:%s>", e.Line, e.Tag)
	case KindStackOverflow:
		return fmt.Sprintf("line %d: nesting exceeds maximum depth of %d", e.Line, e.Limit)
	case KindInputTooLong:
		return fmt.Sprintf("input of %d bytes exceeds maximum length of %d", e.Size, e.Limit)
	default:
		return fmt.Sprintf("line %d: template error", e.Line)
	}
}

// MessageKey returns the phrase key of the error
func (e *Error) MessageKey() string {
	return e.Kind.MessageKey()
}

// MessageArgs returns the template arguments for the phrase
func (e *Error) MessageArgs() map[string]interface{} {
	return map[string]interface{}{
		"line":     e.Line,
		"tag":      e.Tag,
		"expected": strings.Join(e.Expected, ", "),
		"found":    e.Found,
		"near":     e.Near,
		"limit":    e.Limit,
		"size":     e.Size,
	}
}

// IsKind reports whether err is a parser error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// excerpt returns at most n runes of s
func excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
