// catalog.go
//
// Message string catalogs for the client application. One JSON file per
// supported language in the locale directory; requests get the catalog best
// matching their Accept-Language header.

package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Catalog holds the loaded message strings for every supported language.
type Catalog struct {
	languages []string
	matcher   language.Matcher
	strings   map[string]map[string]string
}

// Load reads <lang>.json for each supported language from dir. A missing
// file yields an empty catalog for that language rather than an error, so a
// partially translated deployment still serves every locale.
func Load(dir string, languages []string) (*Catalog, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("at least one supported language is required")
	}

	tags := make([]language.Tag, 0, len(languages))
	catalogStrings := make(map[string]map[string]string, len(languages))

	for _, lang := range languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("unsupported language %q: %w", lang, err)
		}
		tags = append(tags, tag)

		messages := map[string]string{}
		raw, err := os.ReadFile(filepath.Join(dir, lang+".json"))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read catalog for %q: %w", lang, err)
			}
			logrus.WithField("language", lang).Warn("no message strings file, serving empty catalog")
		} else if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse catalog for %q: %w", lang, err)
		}
		catalogStrings[lang] = messages
	}

	return &Catalog{
		languages: languages,
		matcher:   language.NewMatcher(tags),
		strings:   catalogStrings,
	}, nil
}

// Match returns the supported language best matching an Accept-Language
// header, defaulting to the first supported language.
func (c *Catalog) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.languages[0]
	}
	_, index, _ := c.matcher.Match(tags...)
	return c.languages[index]
}

// Strings returns the message strings for a language.
func (c *Catalog) Strings(lang string) map[string]string {
	if messages, ok := c.strings[lang]; ok {
		return messages
	}
	return c.strings[c.languages[0]]
}

// Languages returns the supported languages in priority order.
func (c *Catalog) Languages() []string {
	return c.languages
}
