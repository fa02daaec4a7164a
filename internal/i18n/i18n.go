// Package i18n translates dialog and toast messages.
//
// Message catalogs are TOML files embedded from locales/active.<lang>.toml.
// English is the bundle's default language; a Translator set to any other
// supported language falls back to English, then to the caller's default
// text, for ids it does not know.
package i18n

import (
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// DefaultLanguage is the bundle's source language.
var DefaultLanguage = language.English

// Translator looks up messages in the embedded catalogs for one language.
// It satisfies form.Translator.
type Translator struct {
	bundle *i18n.Bundle
	logger *slog.Logger

	mu        sync.RWMutex
	lang      language.Tag
	localizer *i18n.Localizer
}

// New loads the embedded catalogs and selects lang.
func New(lang string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, f := range files {
		name := path.Join("locales", f.Name())
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
	}

	t := &Translator{
		bundle: bundle,
		logger: logger.With("component", "i18n"),
	}
	if err := t.SetLanguage(lang); err != nil {
		return nil, err
	}
	return t, nil
}

// Languages returns the languages with a catalog.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Language returns the selected language.
func (t *Translator) Language() language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage selects a language. It fails for malformed tags and for
// languages without a catalog.
func (t *Translator) SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("i18n: language %q: %w", lang, err)
	}

	base, _ := tag.Base()
	supported := false
	for _, have := range t.bundle.LanguageTags() {
		if hb, _ := have.Base(); hb == base {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("i18n: language %q not supported", lang)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = tag
	t.localizer = i18n.NewLocalizer(t.bundle, tag.String())
	return nil
}

// Translate returns the text for id, or fallback when no catalog has it.
func (t *Translator) Translate(id, fallback string) string {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()

	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		t.logger.Debug("translation missing", "id", id, "lang", t.Language())
		return fallback
	}
	return msg
}

// Plural returns the count-aware text for id with {{.Count}} filled in.
func (t *Translator) Plural(id string, count int, fallback string) string {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()

	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
