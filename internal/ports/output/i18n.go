package output

// T exposes a minimal i18n contract for user-facing messages: reminders,
// announcements and birthday embeds all render through it.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}
