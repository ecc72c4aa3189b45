// File: phrases.go
// Title: xentpl Message Phrases
// Description: Embedded phrase files for compiler errors and CLI output,
//              and helpers that render coded errors in the current locale.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial implementation

package xentpl

import (
	"embed"
	"errors"
	"io/fs"
	"os"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	"github.com/msto63/xentpl/foundation/core/i18n"
)

// DefaultLocale is the locale every phrase exists in
const DefaultLocale = "en"

//go:embed phrases/*.toml phrases/*.yaml
var phraseFiles embed.FS

// Phrases returns the embedded phrase files
func Phrases() fs.FS {
	sub, err := fs.Sub(phraseFiles, "phrases")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewPhrases creates a phrase manager from the embedded phrases. Files in
// dir, if given, override embedded phrases key by key.
func NewPhrases(locale, dir string) (*i18n.Manager, error) {
	m, err := i18n.New(i18n.Options{DefaultLocale: DefaultLocale, FS: Phrases()})
	if err != nil {
		return nil, err
	}

	if dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, xterror.New("phrase directory not found").
				WithCode(xterror.CodeNotFound).
				WithOperation("xentpl.NewPhrases").
				WithDetail("directory", dir)
		}
		if err := m.LoadFS(os.DirFS(dir)); err != nil {
			return nil, err
		}
	}

	if locale != "" && locale != DefaultLocale {
		if err := m.SetLocale(locale); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Localize renders err through its message key. Errors without a key, or
// with a key the manager does not know, fall back to err.Error().
func Localize(m *i18n.Manager, err error) string {
	if err == nil {
		return ""
	}

	var xerr *xterror.Error
	if m != nil && errors.As(err, &xerr) && xerr.MessageKey() != "" {
		if msg, terr := m.TryT(xerr.MessageKey(), xerr.MessageArgs()); terr == nil {
			return msg
		}
	}
	return err.Error()
}
