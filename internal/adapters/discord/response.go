package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// sendReply answers the command message without pinging anyone.
func sendReply(s *discordgo.Session, m *discordgo.Message, reply Reply) {
	if reply.empty() {
		return
	}
	msg := &discordgo.MessageSend{
		Content:         reply.Content,
		Reference:       m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if reply.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}
	if _, err := s.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
		log.Printf("❌ Reply in %s: %v", m.ChannelID, err)
	}
}
