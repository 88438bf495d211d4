package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"applebot/internal/domain/entities"
	"applebot/internal/infrastructure/i18n"
)

var testRoles = []*discordgo.Role{
	{ID: "100", Name: "Raid"},
	{ID: "200", Name: "Casu"},
}

func TestResolveRoleMentions(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantText     string
		wantMentions []string
	}{
		{
			name:         "Known roles replaced",
			text:         "Soirée @Raid avec les @Casu !",
			wantText:     "Soirée <@&100> avec les <@&200> !",
			wantMentions: []string{"<@&100>", "<@&200>"},
		},
		{
			name:     "Unknown role left untouched",
			text:     "ping @Nobody",
			wantText: "ping @Nobody",
		},
		{
			name:         "Duplicate role mentioned once",
			text:         "@Raid @Raid",
			wantText:     "<@&100> <@&100>",
			wantMentions: []string{"<@&100>"},
		},
		{
			name:     "No roles in text",
			text:     "just a description",
			wantText: "just a description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotMentions := resolveRoleMentions(tt.text, testRoles)
			assert.Equal(t, tt.wantText, gotText)
			assert.Equal(t, tt.wantMentions, gotMentions)
		})
	}
}

func TestBuildReminderContent(t *testing.T) {
	translator := i18n.NewTranslator("en")
	ev := entities.Event{
		ID:          "evt-1",
		GuildID:     "g-1",
		Name:        "Movie Night",
		Description: "Come hang out @Raid",
		ChannelID:   "42",
		URL:         "https://discord.com/events/g-1/evt-1",
		StartTime:   time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC),
		Status:      entities.StatusScheduled,
	}

	t.Run("Upcoming with plural minutes", func(t *testing.T) {
		got := buildReminderContent(translator, "en", ev, 30, testRoles)
		assert.Equal(t,
			"<@&100> **\"Movie Night\"** is starting in 30 minutes! Please come join us in <#42> if you would like to participate! https://discord.com/events/g-1/evt-1",
			got)
	})

	t.Run("Upcoming with singular minute", func(t *testing.T) {
		got := buildReminderContent(translator, "en", ev, 1, testRoles)
		assert.Contains(t, got, "is starting in 1 minute!")
	})

	t.Run("Starting right now", func(t *testing.T) {
		got := buildReminderContent(translator, "en", ev, 0, testRoles)
		assert.Contains(t, got, "is starting **RIGHT NOW!**")
	})

	t.Run("External location when no channel", func(t *testing.T) {
		external := ev
		external.ChannelID = ""
		external.Location = "The park"
		got := buildReminderContent(translator, "en", external, 0, nil)
		assert.Contains(t, got, "join us in The park")
	})
}
