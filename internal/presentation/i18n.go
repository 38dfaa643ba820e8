// Package presentation turns interface configurations into localized form state
// for the console views. Labels are loaded from embedded go-i18n locale files.
package presentation

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Localizer translates console labels into one language
type Localizer struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewBundle parses all embedded locale files
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
	}
	return bundle, nil
}

// NewLocalizer creates a Localizer for the best available match of the
// requested languages. Unsupported languages fall back to English.
func NewLocalizer(bundle *i18n.Bundle, langs ...string) *Localizer {
	matcher := language.NewMatcher(bundle.LanguageTags())
	tag, _ := language.MatchStrings(matcher, langs...)
	base, _ := tag.Base()

	return &Localizer{
		localizer: i18n.NewLocalizer(bundle, append(langs, language.English.String())...),
		tag:       language.Make(base.String()),
	}
}

// Language returns the matched language tag
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T translates a message by its ID. Unknown IDs are returned unchanged.
func (l *Localizer) T(messageID string) string {
	return l.TData(messageID, nil)
}

// TData translates a templated message
func (l *Localizer) TData(messageID string, data map[string]interface{}) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
