package model

import "strings"

// Language is a supported UI language.
type Language string

const (
	LangEnglish Language = "en"
	LangRussian Language = "ru"
	LangUzbek   Language = "uz"

	// DefaultLanguage is used for chats that never picked a language.
	DefaultLanguage = LangEnglish
)

// Languages lists every supported language in menu order.
func Languages() []Language {
	return []Language{LangEnglish, LangRussian, LangUzbek}
}

// ParseLanguage validates a raw language code from the wire.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangEnglish:
		return LangEnglish, true
	case LangRussian:
		return LangRussian, true
	case LangUzbek:
		return LangUzbek, true
	}
	return "", false
}

// langCallbackPrefix marks callback payloads that carry a language choice
// instead of a menu action (LANG_en, LANG_ru, LANG_uz).
const langCallbackPrefix = "LANG_"

// LanguageCallback builds the callback payload for a language button.
func LanguageCallback(lang Language) string {
	return langCallbackPrefix + string(lang)
}

// LanguageFromCallback extracts a language choice from a callback payload.
// Returns false for payloads without the LANG_ prefix or with an unknown code.
func LanguageFromCallback(data string) (Language, bool) {
	if !strings.HasPrefix(data, langCallbackPrefix) {
		return "", false
	}
	return ParseLanguage(strings.TrimPrefix(data, langCallbackPrefix))
}
