// Package i18n holds the Arabic and English UI strings and decides which
// language a request is served in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language. The zero value is not valid; use
// Default or Parse.
type Language string

const (
	Arabic  Language = "arabic"
	English Language = "english"

	// Default is used when nothing else decides.
	Default = Arabic
)

// CookieName is the cookie that persists the user's choice.
const CookieName = "language"

// Parse accepts the persisted names ("arabic", "english") and the two-letter
// codes ("ar", "en"), case-insensitively.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arabic", "ar":
		return Arabic, true
	case "english", "en":
		return English, true
	}
	return "", false
}

func (l Language) String() string { return string(l) }

// Dir returns the document direction.
func (l Language) Dir() string {
	if l == English {
		return "ltr"
	}
	return "rtl"
}

// Tag returns the value for the html lang attribute.
func (l Language) Tag() string {
	if l == English {
		return "en"
	}
	return "ar"
}

// Code returns the language code sent with compose requests.
func (l Language) Code() string { return l.Tag() }

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Arabic
	}
	return English
}

// Messages returns the translation table for l, falling back to Arabic.
func (l Language) Messages() *Messages {
	if l == English {
		return &english
	}
	return &arabic
}

var matcher = language.NewMatcher([]language.Tag{
	language.Arabic, // first entry is the fallback
	language.English,
})

// Negotiate picks the language for a request: a valid cookie value wins,
// then the best Accept-Language match, then Arabic.
func Negotiate(cookie, acceptLanguage string) Language {
	if l, ok := Parse(cookie); ok {
		return l
	}
	if acceptLanguage == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if idx == 1 {
		return English
	}
	return Arabic
}
