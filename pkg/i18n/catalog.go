package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// DefaultLocale is the locale every catalog falls back to.
const DefaultLocale = "en"

// ErrMissingTranslation signals that neither the requested nor the default
// locale defines a key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

type document struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is an immutable set of locale message tables.
type Catalog struct {
	defaultLocale string
	locales       []string
	messages      map[string]map[string]string
	matcher       language.Matcher
}

var _ Translator = (*Catalog)(nil)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded locale files.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(embeddedLocales, DefaultLocale)
	})
	if defaultErr != nil {
		panic(fmt.Errorf("i18n: embedded catalog: %w", defaultErr))
	}
	return defaultCatalog
}

// Load walks fsys and parses every .yaml/.yml catalog. defaultLocale must be
// one of the loaded locales.
func Load(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("i18n: filesystem is nil")
	}

	messages := make(map[string]map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}

		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", path, err)
		}

		locale := normalizeLocale(doc.Locale)
		if locale == "" {
			return fmt.Errorf("i18n: file %s does not declare a locale", path)
		}
		table, ok := messages[locale]
		if !ok {
			table = make(map[string]string, len(doc.Messages))
			messages[locale] = table
		}
		for key, msg := range doc.Messages {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if _, exists := table[key]; exists {
				return fmt.Errorf("i18n: duplicate key %q for locale %s (file %s)", key, locale, path)
			}
			table[key] = msg
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	defaultLocale = normalizeLocale(defaultLocale)
	if _, ok := messages[defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q has no catalog", defaultLocale)
	}

	locales := []string{defaultLocale}
	for locale := range messages {
		if locale != defaultLocale {
			locales = append(locales, locale)
		}
	}
	// Default stays first so matcher indices line up with locales.
	sort.Strings(locales[1:])

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		defaultLocale: defaultLocale,
		locales:       locales,
		messages:      messages,
		matcher:       language.NewMatcher(tags),
	}, nil
}

// Locales lists the loaded locales, default first.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// DefaultLocale reports the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Translate resolves key for locale, falling back to the default locale.
// Arguments are applied with fmt.Sprintf semantics.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslation
	}
	key = strings.TrimSpace(key)
	for _, candidate := range []string{normalizeLocale(locale), c.defaultLocale} {
		table, ok := c.messages[candidate]
		if !ok {
			continue
		}
		if msg, ok := table[key]; ok && strings.TrimSpace(msg) != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Message is Translate without the error: missing keys return the key.
func (c *Catalog) Message(locale, key string, args ...any) string {
	return Message(c, locale, key, args...)
}

// Negotiate picks the best loaded locale for an Accept-Language header value.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if c == nil {
		return DefaultLocale
	}
	header := strings.TrimSpace(acceptLanguage)
	if header == "" {
		return c.defaultLocale
	}
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return c.defaultLocale
	}
	_, idx, confidence := c.matcher.Match(desired...)
	if confidence == language.No || idx < 0 || idx >= len(c.locales) {
		return c.defaultLocale
	}
	return c.locales[idx]
}

// Message translates key with t and degrades to the key when t is nil or the
// translation is missing.
func Message(t Translator, locale, key string, args ...any) string {
	if t == nil {
		return key
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return key
	}
	return msg
}

func normalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}
	return tag.String()
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
