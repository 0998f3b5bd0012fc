package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"arabic", Arabic, true},
		{"english", English, true},
		{" English ", English, true},
		{"ar", Arabic, true},
		{"EN", English, true},
		{"french", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLanguageAttributes(t *testing.T) {
	assert.Equal(t, "rtl", Arabic.Dir())
	assert.Equal(t, "ar", Arabic.Tag())
	assert.Equal(t, "ar", Arabic.Code())
	assert.Equal(t, English, Arabic.Toggle())

	assert.Equal(t, "ltr", English.Dir())
	assert.Equal(t, "en", English.Tag())
	assert.Equal(t, "en", English.Code())
	assert.Equal(t, Arabic, English.Toggle())
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   Language
	}{
		{name: "nothing falls back to arabic", want: Arabic},
		{name: "cookie wins over header", cookie: "arabic", accept: "en-US,en;q=0.9", want: Arabic},
		{name: "english cookie", cookie: "english", want: English},
		{name: "invalid cookie uses header", cookie: "french", accept: "en-GB", want: English},
		{name: "arabic header", accept: "ar-EG,ar;q=0.9,en;q=0.5", want: Arabic},
		{name: "weighted preference", accept: "fr;q=0.9,en;q=0.8,ar;q=0.1", want: English},
		{name: "unsupported header falls back", accept: "ja", want: Arabic},
		{name: "garbage header falls back", accept: ";;;", want: Arabic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.cookie, tt.accept))
		})
	}
}

func TestMessages_Complete(t *testing.T) {
	for _, lang := range []Language{Arabic, English} {
		v := reflect.ValueOf(*lang.Messages())
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s: %s is empty", lang, v.Type().Field(i).Name)
		}
	}
}

func TestMessages_UnknownLanguageFallsBackToArabic(t *testing.T) {
	assert.Same(t, Arabic.Messages(), Language("french").Messages())
}

func TestSourceCount(t *testing.T) {
	assert.Equal(t, "1 source", English.Messages().SourceCount(1))
	assert.Equal(t, "3 sources", English.Messages().SourceCount(3))
	assert.Equal(t, "0 sources", English.Messages().SourceCount(0))
	assert.Equal(t, "1 مصدر", Arabic.Messages().SourceCount(1))
	assert.Equal(t, "5 مصادر", Arabic.Messages().SourceCount(5))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "66.7%", FormatPercent(66.666))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
}
