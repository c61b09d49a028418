package translit

import (
	"fmt"
	"strings"
)

// Language is a transliteration direction understood by the service.
// The empty value asks the service to auto-detect.
type Language string

const (
	LanguageAuto    Language = ""
	LanguagePunjabi Language = "en-pa"
	LanguageHindi   Language = "en-hi"
	LanguageArabic  Language = "en-ar"
	LanguageSpanish Language = "en-es"
)

// LanguageInfo describes a selectable language mode.
type LanguageInfo struct {
	Code      Language // Value sent in the "language" request field
	Label     string   // Human-readable label
	IsDefault bool     // Whether this is the default mode
}

var languages = []LanguageInfo{
	{Code: LanguageAuto, Label: "Auto-detect", IsDefault: true},
	{Code: LanguagePunjabi, Label: "English to Punjabi"},
	{Code: LanguageHindi, Label: "English to Hindi"},
	{Code: LanguageArabic, Label: "English to Arabic"},
	{Code: LanguageSpanish, Label: "English to Spanish"},
}

// Languages returns the fixed set of language modes in display order.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// Label returns the display label of the language, or the raw code if unknown.
func (l Language) Label() string {
	for _, info := range languages {
		if info.Code == l {
			return info.Label
		}
	}
	return string(l)
}

// String returns the code, or "auto" for auto-detect.
func (l Language) String() string {
	if l == LanguageAuto {
		return "auto"
	}
	return string(l)
}

// ParseLanguage parses a language code.
// The empty string and "auto" both select auto-detect.
//
// Example:
//
//	lang, err := ParseLanguage("EN-PA")
//	// lang = LanguagePunjabi
func ParseLanguage(s string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "auto" {
		return LanguageAuto, nil
	}
	for _, info := range languages {
		if string(info.Code) == code {
			return info.Code, nil
		}
	}
	return LanguageAuto, fmt.Errorf("unsupported language: %s (expected one of: %s)", s, languageCodes())
}

func languageCodes() string {
	codes := make([]string, 0, len(languages))
	for _, info := range languages {
		codes = append(codes, info.Code.String())
	}
	return strings.Join(codes, ", ")
}
