// Package i18n holds the user-facing message catalogs. Every failure kind
// has exactly one message per language; other IDs cover CLI prompts and
// confirmations.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator localizes message IDs into one language, falling back to
// English for IDs the language lacks.
type Translator struct {
	localizer *i18n.Localizer
	lang      string
}

// NewBundle parses every embedded catalog.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name(), err)
		}
	}
	return bundle, nil
}

// New returns a Translator for lang ("en", "ar", or any BCP 47 tag; unknown
// languages fall back to English).
func New(lang string) (*Translator, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}
	return &Translator{localizer: i18n.NewLocalizer(bundle, lang, "en"), lang: lang}, nil
}

// MustNew is New for the embedded catalogs, which are known to parse.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Lang returns the requested language.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates messageID. Unknown IDs are returned unchanged.
func (t *Translator) T(messageID string) string {
	return t.Tf(messageID, nil)
}

// Tf translates messageID, filling template fields from data.
func (t *Translator) Tf(messageID string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}

// MessageID returns the catalog ID for kind.
func MessageID(kind common.Kind) string {
	return "error." + string(kind)
}

// Message returns the single human-readable message for kind. KindNone has
// no message.
func (t *Translator) Message(kind common.Kind) string {
	if kind == common.KindNone {
		return ""
	}
	return t.T(MessageID(kind))
}

// Error is Message(common.KindOf(err)).
func (t *Translator) Error(err error) string {
	return t.Message(common.KindOf(err))
}
