package discord

import (
	"github.com/bwmarrin/discordgo"
)

const (
	// Couleurs héritées du bot d'origine.
	ColorError = 0xFF5733
	ColorAlert = 0xFFFF00
)

// Field is one embed name/value pair.
type Field struct {
	Name  string
	Value string
}

// BuildAlertEmbed builds a simple colored embed with optional fields and an
// optional thumbnail. Used for birthday verdicts and admin alerts.
func BuildAlertEmbed(title, description string, color int, thumbnailURL string, fields ...Field) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	for _, f := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: false,
		})
	}
	if thumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnailURL}
	}
	return embed
}

// Mention formats a user mention.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// RoleMention formats a role mention.
func RoleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// ChannelMention formats a channel mention.
func ChannelMention(channelID string) string {
	return "<#" + channelID + ">"
}
