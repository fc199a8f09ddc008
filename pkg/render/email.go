package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	htmlTemplate = "inquiry.html"
	textTemplate = "inquiry.txt"
)

// Email is the rendered inquiry in both formats.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

// EmailOption configures an EmailRenderer.
type EmailOption func(*EmailRenderer)

// WithTemplates swaps the template renderer, e.g. to override the layout.
func WithTemplates(engine template.Renderer) EmailOption {
	return func(r *EmailRenderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithThemeSelector sets the selector and the theme/variant to request.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) EmailOption {
	return func(r *EmailRenderer) {
		if selector != nil {
			r.selector = selector
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.themeName = trimmed
		}
		r.variant = strings.TrimSpace(variant)
	}
}

// WithThemeVariant keeps the current selector and picks a variant.
func WithThemeVariant(variant string) EmailOption {
	return func(r *EmailRenderer) {
		r.variant = strings.TrimSpace(variant)
	}
}

// WithTranslator sets the catalog used for the subject and placeholders.
func WithTranslator(t i18n.Translator) EmailOption {
	return func(r *EmailRenderer) {
		if t != nil {
			r.translator = t
		}
	}
}

// EmailRenderer builds inquiry emails from a submitted form.
type EmailRenderer struct {
	engine     template.Renderer
	selector   theme.ThemeSelector
	themeName  string
	variant    string
	translator i18n.Translator
}

// NewEmailRenderer constructs a renderer over the embedded templates and the
// default theme manifest.
func NewEmailRenderer(options ...EmailOption) (*EmailRenderer, error) {
	r := &EmailRenderer{
		selector:   NewManifestSelector(DefaultThemeManifest()),
		themeName:  DefaultThemeName,
		translator: i18n.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		files, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("render: templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		r.engine = engine
	}
	if _, err := r.selector.Select(r.themeName, r.variant); err != nil {
		return nil, err
	}
	return r, nil
}

// Render builds the subject, HTML and text bodies for form. The website is
// expected to be sanitized already; it is shown with an https:// prefix.
// Every user-supplied value is escaped before it reaches the HTML template.
func (r *EmailRenderer) Render(form model.FormData, locale string) (Email, error) {
	if r == nil || r.engine == nil {
		return Email{}, errors.New("render: email renderer is not initialised")
	}

	selection, err := r.selector.Select(r.themeName, r.variant)
	if err != nil {
		return Email{}, err
	}

	notProvided := i18n.Message(r.translator, locale, i18n.KeyNotProvided)
	plain := map[string]string{
		"name":       strings.TrimSpace(form.Name),
		"email":      strings.TrimSpace(form.Email),
		"company":    orPlaceholder(form.Company, notProvided),
		"website":    orPlaceholder(form.DisplayWebsite(), notProvided),
		"engagement": orPlaceholder(form.Engagement, notProvided),
		"project":    strings.TrimSpace(form.Project),
		"success":    orPlaceholder(form.Success, notProvided),
	}

	htmlData := map[string]any{"tokens": ThemeTokens(selection)}
	for key, value := range plain {
		if key == "project" || key == "success" {
			htmlData[key] = EscapeHTMLWithBreaks(value)
			continue
		}
		htmlData[key] = EscapeHTML(value)
	}

	html, err := r.engine.RenderTemplate(htmlTemplate, htmlData)
	if err != nil {
		return Email{}, fmt.Errorf("render: html body: %w", err)
	}
	text, err := r.engine.RenderTemplate(textTemplate, plain)
	if err != nil {
		return Email{}, fmt.Errorf("render: text body: %w", err)
	}

	return Email{
		Subject: Subject(r.translator, locale, form.Name),
		HTML:    SanitizeEmailHTML(html),
		Text:    strings.TrimSpace(text) + "\n",
	}, nil
}

// Subject builds the single-line email subject for a submitter name.
func Subject(t i18n.Translator, locale, name string) string {
	clean := strings.Join(strings.Fields(name), " ")
	return i18n.Message(t, locale, i18n.KeyEmailSubject, clean)
}

func orPlaceholder(value, placeholder string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return placeholder
}
