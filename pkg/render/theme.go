package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in inquiry email theme.
const DefaultThemeName = "inquiry"

// DefaultThemeManifest returns the palette used for inquiry emails. The
// "dark" variant overrides the surface and text tokens.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#4f46e5",
			"text":    "#1f2937",
			"muted":   "#6b7280",
			"surface": "#f9fafb",
			"font":    "Helvetica, Arial, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand":   "#a5b4fc",
					"text":    "#f3f4f6",
					"muted":   "#9ca3af",
					"surface": "#111827",
				},
			},
		},
	}
}

// ManifestSelector serves selections from a fixed set of manifests.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select resolves a manifest and validates the requested variant.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ThemeTokens merges base tokens with the selected variant's overrides.
func ThemeTokens(selection *theme.Selection) map[string]string {
	out := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}
