package i18n

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogEnglishMessages(t *testing.T) {
	c := Default()

	cases := map[string]string{
		KeyMissingFields: "Missing required fields",
		KeyInvalidEmail:  "Invalid email address",
		KeySendFailed:    "Failed to send email",
		KeyTimeout:       "The request took too long. Please try again.",
	}
	for key, want := range cases {
		got, err := c.Translate("en", key)
		if err != nil {
			t.Fatalf("translate %s: %v", key, err)
		}
		if got != want {
			t.Fatalf("translate %s = %q, want %q", key, got, want)
		}
	}
}

func TestTranslateFallsBackToDefaultLocale(t *testing.T) {
	c := Default()
	got, err := c.Translate("es", KeyEmailSubject, "Jane")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "New inquiry from Jane" {
		t.Fatalf("unexpected subject %q", got)
	}

	if _, err := c.Translate("es", "does.not.exist"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if got := c.Message("es", "does.not.exist"); got != "does.not.exist" {
		t.Fatalf("Message should degrade to key, got %q", got)
	}
}

func TestNegotiate(t *testing.T) {
	c := Default()
	cases := map[string]string{
		"":                        "en",
		"es-MX,es;q=0.9,en;q=0.8": "es",
		"fr-FR":                   "en",
		"en-GB,en;q=0.9":          "en",
		"not a header;;;":         "en",
	}
	for header, want := range cases {
		if got := c.Negotiate(header); got != want {
			t.Errorf("Negotiate(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("locale: en\nmessages:\n  greeting: hi\n")},
		"b.yaml": {Data: []byte("locale: en\nmessages:\n  greeting: hello\n")},
	}
	if _, err := Load(fsys, "en"); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestLoadRequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"pt.yaml": {Data: []byte("locale: pt-BR\nmessages:\n  greeting: olá\n")},
	}
	if _, err := Load(fsys, "en"); err == nil {
		t.Fatalf("expected missing default locale error")
	}
}

func TestLoadOrdersLocalesDefaultFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml":   {Data: []byte("locale: en\nmessages:\n  greeting: hi\n")},
		"pt.yml":    {Data: []byte("locale: pt-BR\nmessages:\n  greeting: olá\n")},
		"de.yaml":   {Data: []byte("locale: de\nmessages:\n  greeting: hallo\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	c, err := Load(fsys, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "de", "pt-BR"}, c.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if got := c.Message("pt-BR", "greeting"); got != "olá" {
		t.Fatalf("unexpected pt-BR greeting %q", got)
	}
	if got := c.Negotiate("pt-BR"); got != "pt-BR" {
		t.Fatalf("unexpected negotiated locale %q", got)
	}
}

func TestMessageWithNilTranslator(t *testing.T) {
	if got := Message(nil, "en", KeyTimeout); got != KeyTimeout {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestLocaleContext(t *testing.T) {
	ctx := WithLocale(context.Background(), " es ")
	if got := LocaleFrom(ctx, "en"); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
	if got := LocaleFrom(context.Background(), "en"); got != "en" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
