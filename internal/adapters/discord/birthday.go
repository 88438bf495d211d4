package discord

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"applebot/internal/domain"
	"applebot/internal/domain/birthday"
	pkgdiscord "applebot/pkg/discord"
)

// handleMessage watches the verification channel for MM/DD/YYYY birthdates,
// assigns the age-gated role and posts the moderator command.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	if m.ChannelID != b.config.BirthdayChannelID {
		return
	}

	username := m.Author.Username
	verdict, err := b.assigner.Check(username, strings.TrimSpace(m.Content), b.clock.Now())
	switch {
	case errors.Is(err, domain.ErrBirthdateFormat):
		// Tout message du salon n'est pas forcément une date.
		log.Printf("⚠️ Message de %s sans date valide: %v", username, err)
		return
	case errors.Is(err, domain.ErrBirthdateInFuture):
		log.Printf("⚠️ %s a saisi une date de naissance dans le futur", username)
		b.rejectFutureBirthdate(s, m)
		return
	case err != nil:
		log.Printf("❌ Vérification de la date de %s: %v", username, err)
		return
	}

	log.Printf("✅ %s a %d ans", username, verdict.Age)

	if verdict.TooYoung {
		log.Printf("⚠️ %s (%d ans) est en dessous de l'âge minimum (%d)", username, verdict.Age, b.config.MinimumAge)
		b.alertTooYoung(s, m, verdict)
		return
	}

	b.assignAgeRole(s, m, verdict)
	b.sendModeratorCommand(s, m, verdict)
}

// rejectFutureBirthdate pings the member in the verification channel with an
// error embed.
func (b *Bot) rejectFutureBirthdate(s *discordgo.Session, m *discordgo.MessageCreate) {
	locale := b.config.Locale
	embed := pkgdiscord.BuildAlertEmbed(
		b.translator.T(locale, "BirthdayFutureTitle", nil),
		b.translator.T(locale, "BirthdayFutureBody", map[string]any{
			"Channel": pkgdiscord.ChannelMention(b.config.BirthdayChannelID),
		}),
		pkgdiscord.ColorError,
		"",
		pkgdiscord.Field{
			Name:  b.translator.T(locale, "BirthdayFutureField", nil),
			Value: m.Content,
		},
	)
	b.sendEmbed(s, b.config.BirthdayChannelID, pkgdiscord.Mention(m.Author.ID), embed)
}

// alertTooYoung warns the member and alerts the server admin in the
// bot-alerts channel.
func (b *Bot) alertTooYoung(s *discordgo.Session, m *discordgo.MessageCreate, v birthday.Verdict) {
	locale := b.config.Locale
	guildName := m.GuildID
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		guildName = guild.Name
	}

	memberEmbed := pkgdiscord.BuildAlertEmbed(
		b.translator.T(locale, "BirthdayTooYoungTitle", nil),
		b.translator.T(locale, "BirthdayTooYoungBody", map[string]any{
			"Guild":      guildName,
			"MinimumAge": b.config.MinimumAge,
		}),
		pkgdiscord.ColorAlert,
		"",
	)
	b.sendEmbed(s, b.config.BirthdayChannelID, pkgdiscord.Mention(m.Author.ID), memberEmbed)

	adminEmbed := pkgdiscord.BuildAlertEmbed(
		b.translator.T(locale, "BirthdayTooYoungTitle", nil),
		b.translator.T(locale, "BirthdayTooYoungAlert", map[string]any{
			"Username":   m.Author.Username,
			"Channel":    pkgdiscord.ChannelMention(b.config.BirthdayChannelID),
			"Age":        v.Age,
			"MinimumAge": b.config.MinimumAge,
		}),
		pkgdiscord.ColorAlert,
		m.Author.AvatarURL("128"),
	)
	b.sendEmbed(s, b.config.AlertsChannelID, pkgdiscord.Mention(b.config.ServerAdminID), adminEmbed)
}

// assignAgeRole gives the member the Adult or Minor role, removing the wrong
// one first if a previous verification assigned it.
func (b *Bot) assignAgeRole(s *discordgo.Session, m *discordgo.MessageCreate, v birthday.Verdict) {
	roleToAdd, roleToRemove := b.config.AdultRoleID, b.config.MinorRoleID
	if v.Role == birthday.RoleMinor {
		roleToAdd, roleToRemove = b.config.MinorRoleID, b.config.AdultRoleID
	}

	if m.Member != nil && slices.Contains(m.Member.Roles, roleToRemove) {
		log.Printf("⚠️ %s avait le mauvais rôle d'âge, retrait...", m.Author.Username)
		if err := s.GuildMemberRoleRemove(m.GuildID, m.Author.ID, roleToRemove); err != nil {
			log.Printf("❌ Retrait du rôle %s pour %s: %v", roleToRemove, m.Author.Username, err)
		}
	}

	if err := s.GuildMemberRoleAdd(m.GuildID, m.Author.ID, roleToAdd); err != nil {
		log.Printf("❌ Attribution du rôle %s pour %s: %v", roleToAdd, m.Author.Username, err)
		return
	}
	log.Printf("✅ Rôle %q attribué à %s", v.Role, m.Author.Username)
}

// sendModeratorCommand posts the embed with the Birthday Bot command for a
// moderator to run, in the private commands channel.
func (b *Bot) sendModeratorCommand(s *discordgo.Session, m *discordgo.MessageCreate, v birthday.Verdict) {
	locale := b.config.Locale
	embed := pkgdiscord.BuildAlertEmbed(
		b.translator.T(locale, "BirthdayUserTitle", nil),
		m.Author.Username,
		pkgdiscord.ColorError,
		m.Author.AvatarURL("128"),
		pkgdiscord.Field{
			Name:  b.translator.T(locale, "BirthdayFieldBirthdate", nil),
			Value: m.Content,
		},
		pkgdiscord.Field{
			Name:  b.translator.T(locale, "BirthdayFieldAge", nil),
			Value: fmt.Sprintf("%d", v.Age),
		},
		pkgdiscord.Field{
			Name: b.translator.T(locale, "BirthdayFieldRole", nil),
			Value: b.translator.T(locale, "BirthdayRoleAssigned", map[string]any{
				"Username": m.Author.Username,
				"Role":     string(v.Role),
			}),
		},
		pkgdiscord.Field{
			Name:  b.translator.T(locale, "BirthdayFieldCommand", nil),
			Value: v.Command,
		},
	)
	b.sendEmbed(s, b.config.CommandsChannelID, pkgdiscord.Mention(b.config.ServerAdminID), embed)
}

func (b *Bot) sendEmbed(s *discordgo.Session, channelID, mention string, embed *discordgo.MessageEmbed) {
	if mention != "" {
		if _, err := s.ChannelMessageSend(channelID, mention); err != nil {
			log.Printf("❌ Envoi de la mention dans %s: %v", channelID, err)
		}
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("❌ Envoi de l'embed dans %s: %v", channelID, err)
	}
}
