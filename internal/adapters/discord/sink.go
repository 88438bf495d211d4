package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"applebot/internal/domain/entities"
	"applebot/internal/domain/reminder"
	"applebot/internal/ports/output"
	pkgdiscord "applebot/pkg/discord"
)

var _ output.NotificationSink = (*Sink)(nil)

// Sink delivers fired reminders to the updates channel. The scheduler hands
// over identifiers only; the sink looks the event up and builds the message.
type Sink struct {
	session    *discordgo.Session
	registry   *reminder.Registry
	translator output.T
	channelID  string
	locale     string
}

func NewSink(s *discordgo.Session, registry *reminder.Registry, translator output.T, channelID, locale string) *Sink {
	return &Sink{
		session:    s,
		registry:   registry,
		translator: translator,
		channelID:  channelID,
		locale:     locale,
	}
}

// Send posts the reminder for (eventID, offsetMinutes). An error leaves the
// offset due; the scheduler retries it on the next tick.
func (k *Sink) Send(ctx context.Context, eventID string, offsetMinutes int) error {
	ev, ok := k.registry.Get(eventID)
	if !ok {
		return fmt.Errorf("événement %s inconnu du registre", eventID)
	}

	roles, err := k.session.GuildRoles(ev.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		// Le rappel part quand même, sans mention de rôle.
		log.Printf("⚠️ Récupération des rôles du serveur %s: %v", ev.GuildID, err)
		roles = nil
	}

	content := buildReminderContent(k.translator, k.locale, ev, offsetMinutes, roles)
	if _, err := k.session.ChannelMessageSend(k.channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("envoi du rappel: %w", err)
	}
	return nil
}

// buildReminderContent assembles the reminder text: role mentions from the
// event description, then the localized "starting in N minutes" or "starting
// right now" line with the place and the event link.
func buildReminderContent(t output.T, locale string, ev entities.Event, offsetMinutes int, roles []*discordgo.Role) string {
	var b strings.Builder
	_, mentions := resolveRoleMentions(ev.Description, roles)
	for _, mention := range mentions {
		b.WriteString(mention)
		b.WriteString(" ")
	}

	location := ev.Location
	if ev.ChannelID != "" {
		location = pkgdiscord.ChannelMention(ev.ChannelID)
	}

	data := map[string]any{
		"Name":     ev.Name,
		"Location": location,
		"URL":      ev.URL,
	}
	key := "ReminderNow"
	if offsetMinutes > 0 {
		key = "ReminderUpcoming"
		data["Minutes"] = offsetMinutes
	}
	b.WriteString(t.T(locale, key, data))
	return b.String()
}
