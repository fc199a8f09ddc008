package render_test

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestEscapeHTML(t *testing.T) {
	got := render.EscapeHTML(`<script>&"'`)
	want := "&lt;script&gt;&amp;&quot;&#39;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}

	stripped := strings.NewReplacer("&lt;", "", "&gt;", "", "&amp;", "", "&quot;", "", "&#39;", "").Replace(got)
	if strings.ContainsAny(stripped, `<>&"'`) {
		t.Fatalf("raw markup characters survived escaping: %q", got)
	}
}

func TestEscapeHTMLWithBreaks(t *testing.T) {
	got := render.EscapeHTMLWithBreaks("line <one>\nline two\r\nline three")
	want := "line &lt;one&gt;<br>line two<br>line three"
	if got != want {
		t.Fatalf("EscapeHTMLWithBreaks = %q, want %q", got, want)
	}
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("newlines survived: %q", got)
	}
}

func TestEmailRendererRender(t *testing.T) {
	renderer, err := render.NewEmailRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.FormData{
		Name:       "Jane <b>Doe</b>",
		Email:      "jane@co.com",
		Website:    "co.com/work",
		Project:    "Redesign <script>alert(1)</script>\nand checkout",
		Engagement: model.EngagementAdvisory,
	}

	email, err := renderer.Render(form, "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if email.Subject != "New inquiry from Jane <b>Doe</b>" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}

	for _, want := range []string{
		"Jane &lt;b&gt;Doe&lt;/b&gt;",
		"jane@co.com",
		"https://co.com/work",
		"Advisory",
		"&lt;script&gt;alert(1)&lt;/script&gt;<br>and checkout",
		"Not provided",
	} {
		if !strings.Contains(email.HTML, want) {
			t.Fatalf("html body missing %q:\n%s", want, email.HTML)
		}
	}
	if strings.Contains(email.HTML, "<script") || strings.Contains(email.HTML, "<b>") {
		t.Fatalf("html body contains unescaped markup:\n%s", email.HTML)
	}

	for _, want := range []string{
		"Name: Jane <b>Doe</b>",
		"Email: jane@co.com",
		"Company: Not provided",
		"Website: https://co.com/work",
		"Engagement: Advisory",
		"Redesign <script>alert(1)</script>\nand checkout",
		"Success Definition:\nNot provided",
	} {
		if !strings.Contains(email.Text, want) {
			t.Fatalf("text body missing %q:\n%s", want, email.Text)
		}
	}
}

func TestEmailRendererPlaceholdersWhenWebsiteEmpty(t *testing.T) {
	renderer, err := render.NewEmailRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	email, err := renderer.Render(model.FormData{Name: "Jane", Email: "jane@co.com", Project: "x"}, "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(email.Text, "Website: Not provided") {
		t.Fatalf("expected website placeholder:\n%s", email.Text)
	}
	if strings.Contains(email.Text, "https://") {
		t.Fatalf("empty website must not be prefixed:\n%s", email.Text)
	}
}

func TestSubjectStripsLineBreaks(t *testing.T) {
	got := render.Subject(i18n.Default(), "en", "Jane\r\nBcc: victim@example.com")
	if got != "New inquiry from Jane Bcc: victim@example.com" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestNewEmailRendererRejectsUnknownVariant(t *testing.T) {
	if _, err := render.NewEmailRenderer(render.WithThemeVariant("sepia")); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := render.NewEmailRenderer(render.WithThemeVariant("dark")); err != nil {
		t.Fatalf("dark variant: %v", err)
	}
}

func TestEmailRendererTextGolden(t *testing.T) {
	renderer, err := render.NewEmailRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	email, err := renderer.Render(testsupport.SampleForm(), "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	path := filepath.Join("testdata", "inquiry.golden.txt")
	if testsupport.WriteMaybeGolden(t, path, []byte(email.Text)) {
		return
	}
	want := string(testsupport.MustReadGolden(t, path))
	if diff := testsupport.CompareGolden(want, email.Text); diff != "" {
		t.Fatalf("text body mismatch (-want +got):\n%s", diff)
	}
}

func TestEmailRendererCustomTemplatesAndTheme(t *testing.T) {
	files := fstest.MapFS{
		"inquiry.html.tpl": {Data: []byte("<p>{{ tokens.brand }}</p><p>{{ name|safe }}</p>")},
		"inquiry.txt.tpl":  {Data: []byte("{% autoescape off %}{{ name }} / {{ company }}{% endautoescape %}")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	mono := &theme.Manifest{
		Name:   "mono",
		Tokens: map[string]string{"brand": "#000000"},
		Variants: map[string]theme.Variant{
			"soft": {Tokens: map[string]string{"brand": "#555555"}},
		},
	}

	renderer, err := render.NewEmailRenderer(
		render.WithTemplates(engine),
		render.WithThemeSelector(render.NewManifestSelector(mono), "mono", "soft"),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	email, err := renderer.Render(model.FormData{Name: "Jane <b>", Email: "jane@co.com", Project: "x"}, "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if email.HTML != "<p>#555555</p><p>Jane &lt;b&gt;</p>" {
		t.Fatalf("unexpected html %q", email.HTML)
	}
	if email.Text != "Jane <b> / Not provided\n" {
		t.Fatalf("unexpected text %q", email.Text)
	}

	if _, err := render.NewEmailRenderer(render.WithThemeSelector(render.NewManifestSelector(mono), "inquiry", "")); err == nil {
		t.Fatalf("expected error for a theme the selector does not know")
	}
}
