// File: doc.go
// Title: Internationalization (i18n) Package Documentation
// Description: Package i18n provides phrase lookup for xentpl from TOML and
//              YAML language files with template interpolation and fallback.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-14 v0.2.0: fs.FS sources, layered loading, removed watching and locale detection

/*
Package i18n provides phrase lookup for xentpl applications.

Language files are named after their locale ("en.toml", "de.yaml") and hold
nested tables. Keys are addressed with dot notation:

	[template_compiler]
	tag_never_closed = "Tag {{.tag}} opened on line {{.line}} was never closed"

	m, err := i18n.New(i18n.Options{DefaultLocale: "en", FS: phrases})
	msg := m.T("template_compiler.tag_never_closed", map[string]interface{}{
		"tag": "foreach", "line": 3,
	})

Translations are text/template strings rendered with the supplied data. A key
missing in the current locale falls back to the default locale. Further
sources can be layered on top with LoadFS; later sources override earlier
ones key by key.

The Manager is safe for concurrent use.
*/
package i18n
