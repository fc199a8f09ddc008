// Package i18n holds the fixed, translated message catalog shared by the
// wizard and the submission pipeline. Catalogs are YAML documents, one per
// locale, embedded at build time; callers may load additional catalogs from
// any fs.FS. Keys missing from a locale fall back to the default locale and
// finally to the key itself.
package i18n
