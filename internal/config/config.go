package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token         string
	Timezone      string
	Locale        string
	DatabaseURL   string // vide = snapshots de rappels désactivés
	ServerAdminID string

	ReminderOffsets []int // minutes avant l'événement, ordre décroissant
	TickInterval    time.Duration
	SendTimeout     time.Duration

	UpdatesChannelID  string
	BirthdayChannelID string
	CommandsChannelID string
	AlertsChannelID   string

	MinorRoleID string
	AdultRoleID string
	MinimumAge  int
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:             os.Getenv("DISCORD_API_TOKEN"),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		Locale:            getEnv("BOT_LOCALE", "en"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ServerAdminID:     os.Getenv("DISCORD_SERVER_ADMIN_ID"),
		UpdatesChannelID:  os.Getenv("UPDATES_CHANNEL_ID"),
		BirthdayChannelID: os.Getenv("BDAY_FOR_VERIFICATION_CHANNEL_ID"),
		CommandsChannelID: os.Getenv("COMMANDS_CHANNEL_ID"),
		AlertsChannelID:   os.Getenv("BOT_ALERTS_CHANNEL_ID"),
		MinorRoleID:       os.Getenv("MINOR_ROLE_ID"),
		AdultRoleID:       os.Getenv("ADULT_ROLE_ID"),
	}

	var err error
	if cfg.ReminderOffsets, err = parseOffsets(os.Getenv("REMINDER_TIMES")); err != nil {
		return nil, err
	}
	if cfg.MinimumAge, err = parsePositiveInt("MINIMUM_AGE", "0"); err != nil {
		return nil, err
	}

	tickSeconds, err := parsePositiveInt("TICK_INTERVAL_SECONDS", "60")
	if err != nil {
		return nil, err
	}
	cfg.TickInterval = time.Duration(tickSeconds) * time.Second

	sendSeconds, err := parsePositiveInt("SEND_TIMEOUT_SECONDS", "10")
	if err != nil {
		return nil, err
	}
	cfg.SendTimeout = time.Duration(sendSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: DISCORD_API_TOKEN est requis et ne peut pas être vide")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE invalide (%q): %w", c.Timezone, err)
	}

	channels := map[string]string{
		"UPDATES_CHANNEL_ID":               c.UpdatesChannelID,
		"BDAY_FOR_VERIFICATION_CHANNEL_ID": c.BirthdayChannelID,
		"COMMANDS_CHANNEL_ID":              c.CommandsChannelID,
		"BOT_ALERTS_CHANNEL_ID":            c.AlertsChannelID,
		"MINOR_ROLE_ID":                    c.MinorRoleID,
		"ADULT_ROLE_ID":                    c.AdultRoleID,
	}
	for name, value := range channels {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("config: %s est requis et ne peut pas être vide", name)
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: %s doit être un ID Discord (chiffres uniquement)", name)
			}
		}
	}

	if c.TickInterval < time.Second {
		return fmt.Errorf("config: TICK_INTERVAL_SECONDS doit être au moins 1")
	}

	if strings.TrimSpace(c.DatabaseURL) != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	}

	return nil
}

// Location résout le fuseau horaire configuré. La validation a déjà vérifié
// que le nom est connu.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseOffsets lit REMINDER_TIMES, un tableau JSON de minutes,
// ex: [60,30,15,10,5,1,0].
func parseOffsets(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("config: REMINDER_TIMES est requis (ex: [60,30,0])")
	}
	var offsets []int
	if err := json.Unmarshal([]byte(raw), &offsets); err != nil {
		return nil, fmt.Errorf("config: REMINDER_TIMES invalide (%q): %w", raw, err)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("config: REMINDER_TIMES ne peut pas être vide")
	}
	for _, m := range offsets {
		if m < 0 {
			return nil, fmt.Errorf("config: REMINDER_TIMES ne peut pas contenir d'offset négatif (%d)", m)
		}
	}
	return offsets, nil
}

func parsePositiveInt(name, fallback string) (int, error) {
	value := getEnv(name, fallback)
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s doit être un entier positif (%q)", name, value)
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
