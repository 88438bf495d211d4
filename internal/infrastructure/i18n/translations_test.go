package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator("en")

	t.Run("French locale", func(t *testing.T) {
		got := tr.T("fr", "ReminderNow", map[string]any{
			"Name": "Soirée jeux", "Location": "<#42>", "URL": "u",
		})
		assert.Contains(t, got, "MAINTENANT")
	})

	t.Run("Unknown locale falls back to default", func(t *testing.T) {
		got := tr.T("de", "BirthdayUserTitle", nil)
		assert.Equal(t, "User", got)
	})

	t.Run("Unknown key falls back to the key", func(t *testing.T) {
		assert.Equal(t, "NoSuchKey", tr.T("en", "NoSuchKey", nil))
	})

	t.Run("Empty key", func(t *testing.T) {
		assert.Equal(t, "", tr.T("en", "", nil))
	})
}
