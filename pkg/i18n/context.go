package i18n

import (
	"context"
	"strings"
)

type localeKey struct{}

// WithLocale attaches the visitor's locale to ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, strings.TrimSpace(locale))
}

// LocaleFrom returns the locale stored in ctx, or fallback when none is set.
func LocaleFrom(ctx context.Context, fallback string) string {
	if ctx != nil {
		if locale, ok := ctx.Value(localeKey{}).(string); ok && locale != "" {
			return locale
		}
	}
	return fallback
}
