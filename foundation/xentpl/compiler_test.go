// File: compiler_test.go
// Title: xentpl Compiler Tests
// Description: Tests for compiling, error wrapping, localisation of compile
//              errors and concurrent use of a shared compiler.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial test suite

package xentpl

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	"github.com/msto63/xentpl/foundation/core/i18n"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl/ast"
	"github.com/msto63/xentpl/foundation/xentpl/parser"
)

func newTestCompiler(t *testing.T, opts Options) *Compiler {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = xtlog.NewNop()
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCompile(t *testing.T) {
	c := newTestCompiler(t, Options{})

	tree, err := c.Compile("greeting", `Hello <xen:if is="{$name}">{$name}</xen:if>`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := []ast.Node{
		&ast.PlainText{Text: "Hello ", Line: 1},
		&ast.Tag{
			Name:       "if",
			Attributes: ast.Attributes{{Name: "is", Value: &ast.QuotedString{Parts: []ast.Part{&ast.CurlyVar{Name: "name", Line: 1}}}}},
			Children:   []ast.Node{&ast.CurlyVar{Name: "name", Line: 1}},
			Line:       1,
		},
	}
	if diff := cmp.Diff(want, tree, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		source string
		code   xterror.Code
		kind   parser.ErrorKind
	}{
		{"Lexical", Options{}, "<xen:a b=c>", xterror.CodeTemplateLexical, parser.KindLexical},
		{"Unterminated", Options{}, "{$a", xterror.CodeTemplateLexical, parser.KindUnterminated},
		{"Syntax", Options{}, "{xen:f}", xterror.CodeTemplateSyntax, parser.KindSyntax},
		{"Unexpected close", Options{}, "</xen:a>", xterror.CodeTemplateStructure, parser.KindTagCloseUnexpected},
		{"Mismatched close", Options{}, "<xen:a></xen:b>", xterror.CodeTemplateStructure, parser.KindTagCloseMismatch},
		{"Never closed", Options{}, "<xen:a>", xterror.CodeTemplateStructure, parser.KindTagNeverClosed},
		{"Too deep", Options{MaxStackDepth: 5}, "{xen:f {xen:g {xen:h x}}}", xterror.CodeTemplateLimit, parser.KindStackOverflow},
		{"Too long", Options{MaxInputLength: 4}, "hello", xterror.CodeTemplateLimit, parser.KindInputTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompiler(t, tt.opts)
			_, err := c.Compile("broken", tt.source)
			if err == nil {
				t.Fatal("Compile() should fail")
			}

			if got := xterror.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
			if !parser.IsKind(err, tt.kind) {
				t.Errorf("error %v is not of kind %s", err, tt.kind)
			}

			var xerr *xterror.Error
			if !errors.As(err, &xerr) {
				t.Fatalf("error type = %T, want *error.Error", err)
			}
			if xerr.Details()["title"] != "broken" {
				t.Errorf("title detail = %v", xerr.Details()["title"])
			}
			if xerr.MessageKey() != tt.kind.MessageKey() {
				t.Errorf("MessageKey() = %q, want %q", xerr.MessageKey(), tt.kind.MessageKey())
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{Logger: xtlog.NewNop(), MaxInputLength: -1})
	if !xterror.HasCode(err, xterror.CodeInvalidInput) {
		t.Errorf("New() error = %v, want invalid input", err)
	}
}

func TestCompile_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := xtlog.NewWithConfig(xtlog.Config{Level: xtlog.LevelDebug, Format: xtlog.FormatJSON, Output: &buf})
	c := newTestCompiler(t, Options{Logger: logger})

	if _, err := c.Compile("ok", "text"); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(buf.String(), "compile completed") {
		t.Errorf("missing completion log in %q", buf.String())
	}

	buf.Reset()
	if _, err := c.Compile("bad", "<xen:a>"); err == nil {
		t.Fatal("Compile() should fail")
	}
	out := buf.String()
	if !strings.Contains(out, "compile failed") || !strings.Contains(out, `"title":"bad"`) {
		t.Errorf("missing failure log in %q", out)
	}
}

func TestTokenize(t *testing.T) {
	c := newTestCompiler(t, Options{})

	tokens, err := c.Tokenize("a{$b}")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []parser.Token{
		{Type: parser.TokenPlainText, Value: "a", Line: 1},
		{Type: parser.TokenCurlyVar, Value: "b", Line: 1},
		{Type: parser.TokenCurlyEnd, Value: "}", Line: 1},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Tokenize("{$"); !xterror.HasCode(err, xterror.CodeTemplateLexical) {
		t.Errorf("Tokenize() error = %v, want lexical error", err)
	}
}

func TestCompile_Concurrent(t *testing.T) {
	c := newTestCompiler(t, Options{})
	sources := []string{
		"plain",
		"{$a.b}",
		"<xen:x>{xen:f 1, 2}</xen:x>",
		"<xen:broken>",
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := sources[i%len(sources)]
			_, err := c.Compile("t", src)
			if (err != nil) != (src == "<xen:broken>") {
				t.Errorf("Compile(%q) error = %v", src, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestLocalize(t *testing.T) {
	c := newTestCompiler(t, Options{})

	tests := []struct {
		locale string
		source string
		want   string
	}{
		{"en", "<xen:foo>", "Line 1: the tag <xen:foo> was never closed"},
		{"de", "<xen:foo>", "Zeile 1: das Tag <xen:foo> wurde nie geschlossen"},
		{"en", "<xen:a>\n</xen:b>", "Line 2: closing tag </xen:b> does not match the expected tag </xen:a>"},
		{"en", "</xen:a>", "Line 1: closing tag </xen:a> found, but no tag is open"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.source, func(t *testing.T) {
			m, err := NewPhrases(tt.locale, "")
			if err != nil {
				t.Fatalf("NewPhrases() error = %v", err)
			}
			_, cerr := c.Compile("t", tt.source)
			if got := Localize(m, cerr); got != tt.want {
				t.Errorf("Localize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalize_Fallbacks(t *testing.T) {
	m, err := NewPhrases("", "")
	if err != nil {
		t.Fatalf("NewPhrases() error = %v", err)
	}

	plain := errors.New("plain failure")
	if got := Localize(m, plain); got != "plain failure" {
		t.Errorf("Localize(plain) = %q", got)
	}
	unknown := xterror.New("coded").WithMessage("no.such.key", nil)
	if got := Localize(m, unknown); got != "coded" {
		t.Errorf("Localize(unknown key) = %q", got)
	}
	if got := Localize(nil, plain); got != "plain failure" {
		t.Errorf("Localize(nil manager) = %q", got)
	}
	if got := Localize(m, nil); got != "" {
		t.Errorf("Localize(nil error) = %q", got)
	}
}

func TestPhrases_Complete(t *testing.T) {
	m, err := i18n.New(i18n.Options{DefaultLocale: DefaultLocale, FS: Phrases(), NoFallback: true})
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}

	if diff := cmp.Diff(m.GetTranslationKeys("en"), m.GetTranslationKeys("de")); diff != "" {
		t.Errorf("locales differ (-en +de):\n%s", diff)
	}

	kinds := []parser.ErrorKind{
		parser.KindLexical, parser.KindUnterminated, parser.KindSyntax, parser.KindTagCloseUnexpected,
		parser.KindTagCloseMismatch, parser.KindTagNeverClosed, parser.KindStackOverflow, parser.KindInputTooLong,
	}
	for _, locale := range []string{"en", "de"} {
		for _, k := range kinds {
			if _, err := m.Translate(locale, k.MessageKey()); err != nil {
				t.Errorf("%s: missing phrase %q", locale, k.MessageKey())
			}
		}
	}
}

func TestNewPhrases_Errors(t *testing.T) {
	if _, err := NewPhrases("fr", ""); !xterror.HasCode(err, xterror.CodeNotFound) {
		t.Errorf("NewPhrases(fr) error = %v, want not found", err)
	}
	if _, err := NewPhrases("en", t.TempDir()+"/missing"); !xterror.HasCode(err, xterror.CodeNotFound) {
		t.Errorf("NewPhrases(missing dir) error = %v, want not found", err)
	}
}
