package output

// T is the translation port used for every user-facing string.
type T interface {
	// T renders message key in locale, falling back to the default locale and then
	// to the key itself. data feeds template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
