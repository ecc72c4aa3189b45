// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the i18n Manager: loading and merging TOML and YAML
//              language files from an fs.FS, dotted key lookup with fallback
//              and text/template interpolation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue in pluralization
// - 2026-10-14 v0.2.0: fs.FS sources, LoadFS layering, per-call locale lookup

package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	xterror "github.com/msto63/xentpl/foundation/core/error"
)

// Format represents the language file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML restricts loading to .toml files
	FormatTOML

	// FormatYAML restricts loading to .yaml and .yml files
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale string // Default locale (e.g., "en")
	LocalesDir    string // Directory containing language files, used when FS is nil
	FS            fs.FS  // Source of language files (e.g. an embed.FS)
	Format        Format // File format filter (default: auto-detect)
	NoFallback    bool   // Disable fallback to the default locale
}

// Manager manages phrase lookup for an application
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	format        Format
	fallback      bool
	translations  map[string]map[string]interface{} // locale -> translations
	templates     map[string]*template.Template     // locale + key -> compiled template
}

// New creates a new i18n manager with the specified options
func New(options Options) (*Manager, error) {
	if strings.TrimSpace(options.DefaultLocale) == "" {
		return nil, xterror.New("default locale cannot be empty").
			WithCode(xterror.CodeInvalidInput).
			WithOperation("i18n.New")
	}

	fsys := options.FS
	if fsys == nil {
		dir := options.LocalesDir
		if strings.TrimSpace(dir) == "" {
			dir = "./locales"
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, xterror.New("locales directory not found").
				WithCode(xterror.CodeNotFound).
				WithOperation("i18n.New").
				WithDetail("directory", dir)
		}
		fsys = os.DirFS(dir)
	}

	m := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		format:        options.Format,
		fallback:      !options.NoFallback,
		translations:  make(map[string]map[string]interface{}),
		templates:     make(map[string]*template.Template),
	}

	if err := m.LoadFS(fsys); err != nil {
		return nil, err
	}

	if !m.HasLocale(m.defaultLocale) {
		return nil, xterror.Newf("default locale '%s' not found", m.defaultLocale).
			WithCode(xterror.CodeNotFound).
			WithOperation("i18n.New").
			WithDetail("locale", m.defaultLocale)
	}

	return m, nil
}

// LoadFS loads every language file in the root of fsys. Keys already present
// are overridden, so a user directory can be layered over embedded phrases.
func (m *Manager) LoadFS(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return xterror.Wrap(err, "failed to read locales").
			WithCode(xterror.CodeConfigError).
			WithOperation("i18n.LoadFS")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !m.supports(ext) {
			continue
		}

		locale := strings.TrimSuffix(name, path.Ext(name))
		if locale == "" {
			continue
		}

		data, err := readLocaleFile(fsys, name, ext)
		if err != nil {
			return xterror.Wrap(err, "failed to load locale file").
				WithCode(xterror.CodeConfigError).
				WithOperation("i18n.LoadFS").
				WithDetail("file", name)
		}

		m.mu.Lock()
		if existing, ok := m.translations[locale]; ok {
			mergeInto(existing, data)
		} else {
			m.translations[locale] = data
		}
		// compiled templates may belong to overridden keys
		m.templates = make(map[string]*template.Template)
		m.mu.Unlock()
	}

	return nil
}

func (m *Manager) supports(ext string) bool {
	switch m.format {
	case FormatTOML:
		return ext == ".toml"
	case FormatYAML:
		return ext == ".yaml" || ext == ".yml"
	default:
		return ext == ".toml" || ext == ".yaml" || ext == ".yml"
	}
}

func readLocaleFile(fsys fs.FS, name, ext string) (map[string]interface{}, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{})
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", name, err)
		}
	}
	return data, nil
}

// mergeInto copies src into dst, descending into nested tables
func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]interface{})
		dstMap, dstIsMap := dst[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			mergeInto(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

// T translates a key in the current locale. Unknown keys return "[key]".
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, err := m.TryT(key, data...)
	if err != nil && translation == "" {
		return "[" + key + "]"
	}
	return translation
}

// TryT translates a key in the current locale and reports missing keys
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	return m.Translate(m.GetCurrentLocale(), key, data...)
}

// Translate translates a key in the given locale without changing the
// current locale.
func (m *Manager) Translate(locale, key string, data ...map[string]interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	translation, resolved := m.getTranslation(key, locale)
	if translation == "" {
		return "", xterror.New("translation not found").
			WithCode(xterror.CodeNotFound).
			WithOperation("i18n.Translate").
			WithDetail("key", key).
			WithDetail("locale", locale)
	}

	if len(data) > 0 && data[0] != nil {
		rendered, err := m.renderTemplate(resolved+":"+key, translation, data[0])
		if err != nil {
			return translation, xterror.Wrap(err, "template rendering failed").
				WithCode(xterror.CodeInvalidInput).
				WithOperation("i18n.renderTemplate").
				WithDetail("key", key)
		}
		return rendered, nil
	}

	return translation, nil
}

// TWithFallback translates a key and renders fallbackMsg when it is missing
func (m *Manager) TWithFallback(key string, fallbackMsg string, data ...map[string]interface{}) string {
	if translation, err := m.TryT(key, data...); err == nil {
		return translation
	}

	if len(data) > 0 && data[0] != nil {
		m.mu.Lock()
		rendered, err := m.renderTemplate("fallback:"+key, fallbackMsg, data[0])
		m.mu.Unlock()
		if err == nil {
			return rendered
		}
	}

	return fallbackMsg
}

// getTranslation returns the translation and the locale it was found in
func (m *Manager) getTranslation(key, locale string) (string, string) {
	if translations, exists := m.translations[locale]; exists {
		if value := getNestedValue(translations, key); value != "" {
			return value, locale
		}
	}

	if m.fallback && locale != m.defaultLocale {
		if translations, exists := m.translations[m.defaultLocale]; exists {
			if value := getNestedValue(translations, key); value != "" {
				return value, m.defaultLocale
			}
		}
	}

	return "", ""
}

// getNestedValue retrieves a nested value from translations using dot notation
func getNestedValue(data map[string]interface{}, key string) string {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		value, ok := current[k]
		if !ok {
			return ""
		}
		if i == len(keys)-1 {
			if _, isMap := value.(map[string]interface{}); isMap {
				return ""
			}
			return fmt.Sprintf("%v", value)
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}

	return ""
}

// renderTemplate renders a translation template; callers hold the write lock
func (m *Manager) renderTemplate(cacheKey, text string, data map[string]interface{}) (string, error) {
	tmpl, exists := m.templates[cacheKey]
	if !exists {
		var err error
		tmpl, err = template.New(cacheKey).Parse(text)
		if err != nil {
			return text, fmt.Errorf("template compilation failed: %w", err)
		}
		m.templates[cacheKey] = tmpl
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return text, fmt.Errorf("template execution failed: %w", err)
	}
	return result.String(), nil
}

// SetLocale changes the current locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.translations[locale]; !exists {
		return xterror.New("locale not available").
			WithCode(xterror.CodeNotFound).
			WithOperation("i18n.SetLocale").
			WithDetail("locale", locale)
	}

	m.currentLocale = locale
	return nil
}

// GetCurrentLocale returns the current active locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// GetDefaultLocale returns the default locale
func (m *Manager) GetDefaultLocale() string {
	return m.defaultLocale
}

// GetAvailableLocales returns a sorted list of all loaded locales
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasLocale checks if a locale is available
func (m *Manager) HasLocale(locale string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.translations[locale]
	return exists
}

// HasTranslation checks if a key resolves in the current locale
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	translation, _ := m.getTranslation(key, m.currentLocale)
	return translation != ""
}

// GetTranslationKeys returns all keys defined for the locale, sorted
func (m *Manager) GetTranslationKeys(locale string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	translations := m.translations[locale]
	if translations == nil {
		return nil
	}

	keys := collectKeys(translations, "")
	sort.Strings(keys)
	return keys
}

func collectKeys(data map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, collectKeys(nested, fullKey)...)
		} else {
			keys = append(keys, fullKey)
		}
	}
	return keys
}

// String provides a readable representation of the manager
func (m *Manager) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf("i18n.Manager{defaultLocale: %s, currentLocale: %s, format: %s, fallback: %t, locales: %d}",
		m.defaultLocale, m.currentLocale, m.format, m.fallback, len(m.translations))
}
