package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_API_TOKEN", "token-123")
	t.Setenv("TIMEZONE", "America/Los_Angeles")
	t.Setenv("REMINDER_TIMES", "[60, 30, 15, 10, 5, 1, 0]")
	t.Setenv("UPDATES_CHANNEL_ID", "111")
	t.Setenv("BDAY_FOR_VERIFICATION_CHANNEL_ID", "222")
	t.Setenv("COMMANDS_CHANNEL_ID", "333")
	t.Setenv("BOT_ALERTS_CHANNEL_ID", "444")
	t.Setenv("MINOR_ROLE_ID", "555")
	t.Setenv("ADULT_ROLE_ID", "666")
	t.Setenv("MINIMUM_AGE", "13")
	t.Setenv("DISCORD_SERVER_ADMIN_ID", "777")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TICK_INTERVAL_SECONDS", "")
	t.Setenv("SEND_TIMEOUT_SECONDS", "")
	t.Setenv("BOT_LOCALE", "")
}

func TestLoad(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token-123", cfg.Token)
	assert.Equal(t, []int{60, 30, 15, 10, 5, 1, 0}, cfg.ReminderOffsets)
	assert.Equal(t, 13, cfg.MinimumAge)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, 10*time.Second, cfg.SendTimeout)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "America/Los_Angeles", cfg.Location().String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Missing token", key: "DISCORD_API_TOKEN", value: ""},
		{name: "Unknown timezone", key: "TIMEZONE", value: "Mars/Olympus"},
		{name: "Empty offsets", key: "REMINDER_TIMES", value: "[]"},
		{name: "Negative offset", key: "REMINDER_TIMES", value: "[60,-5]"},
		{name: "Offsets not JSON", key: "REMINDER_TIMES", value: "60,30"},
		{name: "Channel id with letters", key: "UPDATES_CHANNEL_ID", value: "abc123"},
		{name: "Missing role id", key: "ADULT_ROLE_ID", value: ""},
		{name: "Minimum age not a number", key: "MINIMUM_AGE", value: "treize"},
		{name: "Tick interval zero", key: "TICK_INTERVAL_SECONDS", value: "0"},
		{name: "Database url without scheme", key: "DATABASE_URL", value: "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
