package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"telegram-course-bot/internal/domain/model"
)

//go:embed locales
var LocalesFS embed.FS

// Translator holds the string table for one language.
type Translator struct {
	translations map[string]string
}

// NewTranslator loads locales/<langCode>.yaml from the provided filesystem.
func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("parse translation file %s: %w", filePath, err)
	}

	return &Translator{translations: translations}, nil
}

// T returns the localized string for key, or the key itself when missing.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Keys returns all translation keys loaded for this language.
func (t *Translator) Keys() []string {
	out := make([]string, 0, len(t.translations))
	for k := range t.translations {
		out = append(out, k)
	}
	return out
}

// Bundle groups one Translator per supported language.
type Bundle struct {
	translators map[model.Language]*Translator
}

// NewBundle loads every supported language from fsys.
func NewBundle(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{translators: make(map[model.Language]*Translator, len(model.Languages()))}
	for _, lang := range model.Languages() {
		tr, err := NewTranslator(fsys, string(lang))
		if err != nil {
			return nil, err
		}
		b.translators[lang] = tr
	}
	return b, nil
}

// T localizes key in lang, falling back to the default language's table for
// unknown languages.
func (b *Bundle) T(lang model.Language, key string, args ...interface{}) string {
	tr, ok := b.translators[lang]
	if !ok {
		tr = b.translators[model.DefaultLanguage]
	}
	return tr.T(key, args...)
}

// Translator exposes the per-language table, used by tests to check coverage.
func (b *Bundle) Translator(lang model.Language) *Translator {
	return b.translators[lang]
}
