package discord

import (
	"log"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"applebot/internal/domain/entities"
	pkgdiscord "applebot/pkg/discord"
)

// Noms de rôles mentionnés dans la description, ex: "@Raid @Casu".
var roleNamePattern = regexp.MustCompile(`@\w+`)

// resolveRoleMentions replaces every "@Name" token that matches a guild role
// with a real role mention, and returns the rewritten text plus the list of
// mentions in order of first appearance. Unknown names are left untouched.
func resolveRoleMentions(text string, roles []*discordgo.Role) (string, []string) {
	byName := make(map[string]string, len(roles))
	for _, role := range roles {
		byName[role.Name] = role.ID
	}

	var mentions []string
	seen := make(map[string]bool)
	rewritten := roleNamePattern.ReplaceAllStringFunc(text, func(token string) string {
		id, ok := byName[token[1:]]
		if !ok {
			return token
		}
		mention := pkgdiscord.RoleMention(id)
		if !seen[mention] {
			seen[mention] = true
			mentions = append(mentions, mention)
		}
		return mention
	})
	return rewritten, mentions
}

// announceEvent posts the event description to the updates channel with role
// names resolved to mentions and the event link appended.
func (b *Bot) announceEvent(s *discordgo.Session, ev entities.Event) {
	roles, err := s.GuildRoles(ev.GuildID)
	if err != nil {
		log.Printf("⚠️ Récupération des rôles du serveur %s: %v", ev.GuildID, err)
	}

	desc, _ := resolveRoleMentions(ev.Description, roles)
	content := strings.TrimSpace(desc + " " + ev.URL)

	if _, err := s.ChannelMessageSend(b.config.UpdatesChannelID, content); err != nil {
		log.Printf("❌ Annonce de l'événement %q: %v", ev.Name, err)
	}
}
