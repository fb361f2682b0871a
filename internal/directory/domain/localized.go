package domain

import "strings"

// Supported content languages. French is the fallback for every field.
const (
	LangFR = "fr"
	LangEN = "en"
	LangAR = "ar"
)

// LocalizedText holds an optional value per language.
type LocalizedText struct {
	FR *string
	EN *string
	AR *string
}

// NewLocalizedText builds a text from plain strings, treating blanks as absent.
func NewLocalizedText(fr, en, ar string) LocalizedText {
	return LocalizedText{FR: optional(fr), EN: optional(en), AR: optional(ar)}
}

// Resolve returns the value for lang, falling back to French, then to "".
func (t LocalizedText) Resolve(lang string) string {
	var candidate *string
	switch lang {
	case LangEN:
		candidate = t.EN
	case LangAR:
		candidate = t.AR
	}
	if candidate != nil && strings.TrimSpace(*candidate) != "" {
		return *candidate
	}
	if t.FR != nil {
		return *t.FR
	}
	return ""
}

// IsEmpty reports whether no language carries a value.
func (t LocalizedText) IsEmpty() bool {
	return t.FR == nil && t.EN == nil && t.AR == nil
}

// Contains reports whether any language variant contains needle, case-insensitively.
func (t LocalizedText) Contains(needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, v := range []*string{t.FR, t.EN, t.AR} {
		if v != nil && strings.Contains(strings.ToLower(*v), needle) {
			return true
		}
	}
	return false
}

// LocalizedList holds per-language string arrays (services, styles, cities).
type LocalizedList struct {
	FR []string
	EN []string
	AR []string
}

// Resolve returns the list for lang, falling back to French.
func (l LocalizedList) Resolve(lang string) []string {
	var candidate []string
	switch lang {
	case LangEN:
		candidate = l.EN
	case LangAR:
		candidate = l.AR
	}
	if len(candidate) > 0 {
		return append([]string(nil), candidate...)
	}
	return append([]string(nil), l.FR...)
}

// Has reports whether any language list contains value, case-insensitively.
func (l LocalizedList) Has(value string) bool {
	value = strings.TrimSpace(value)
	for _, list := range [][]string{l.FR, l.EN, l.AR} {
		for _, item := range list {
			if strings.EqualFold(strings.TrimSpace(item), value) {
				return true
			}
		}
	}
	return false
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
