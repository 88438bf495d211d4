package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"applebot/internal/domain/entities"
	"applebot/internal/domain/reminder"
	"applebot/internal/ports/input"
)

// The registry is the event source the gateway handlers push into.
var _ input.EventSource = (*reminder.Registry)(nil)

// eventFromDiscord maps a gateway scheduled event to the domain shape.
func eventFromDiscord(ev *discordgo.GuildScheduledEvent) entities.Event {
	return entities.Event{
		ID:          ev.ID,
		GuildID:     ev.GuildID,
		Name:        ev.Name,
		Description: ev.Description,
		ChannelID:   ev.ChannelID,
		Location:    ev.EntityMetadata.Location,
		URL:         eventURL(ev.GuildID, ev.ID),
		StartTime:   ev.ScheduledStartTime,
		Status:      statusFromDiscord(ev.Status),
	}
}

func statusFromDiscord(st discordgo.GuildScheduledEventStatus) entities.EventStatus {
	switch st {
	case discordgo.GuildScheduledEventStatusActive:
		return entities.StatusStarted
	case discordgo.GuildScheduledEventStatusCompleted:
		return entities.StatusCompleted
	case discordgo.GuildScheduledEventStatusCanceled:
		return entities.StatusCancelled
	default:
		return entities.StatusScheduled
	}
}

func eventURL(guildID, eventID string) string {
	return fmt.Sprintf("https://discord.com/events/%s/%s", guildID, eventID)
}

// handleReady seeds the registry from the live event list. Combined with the
// restored snapshot this re-schedules pending reminders after a restart, and
// RetainOnly clears state for events deleted while the bot was down.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Println("🤖 Apple Bot est prêt !")

	var live []string
	complete := true
	for _, guild := range r.Guilds {
		events, err := s.GuildScheduledEvents(guild.ID, false)
		if err != nil {
			log.Printf("❌ Récupération des événements du serveur %s: %v", guild.ID, err)
			complete = false
			continue
		}
		for _, ev := range events {
			live = append(live, ev.ID)
			b.registry.Upsert(eventFromDiscord(ev))
		}
	}
	// On ne purge l'état restauré que si la liste des événements est complète.
	if complete {
		b.registry.RetainOnly(live)
	}

	log.Printf("📅 %d événement(s) suivi(s)", b.registry.Len())
	b.scheduler.Wake()
}

func (b *Bot) handleEventCreate(s *discordgo.Session, e *discordgo.GuildScheduledEventCreate) {
	ev := eventFromDiscord(e.GuildScheduledEvent)
	log.Printf("📅 Événement créé: %q (début: %s)", ev.Name, ev.StartTime)
	b.registry.Upsert(ev)
	b.announceEvent(s, ev)
	b.scheduler.Wake()
}

func (b *Bot) handleEventUpdate(s *discordgo.Session, e *discordgo.GuildScheduledEventUpdate) {
	ev := eventFromDiscord(e.GuildScheduledEvent)
	log.Printf("📅 Événement mis à jour: %q (statut: %s)", ev.Name, ev.Status)
	b.registry.Upsert(ev)
	b.scheduler.Wake()
}

func (b *Bot) handleEventDelete(s *discordgo.Session, e *discordgo.GuildScheduledEventDelete) {
	log.Printf("📅 Événement supprimé: %s", e.ID)
	b.registry.Remove(e.ID)
}
