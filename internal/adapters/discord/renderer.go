package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

var _ output.RosterRenderer = (*Renderer)(nil)

// Renderer draws rosters as embeds in the event's channel.
type Renderer struct {
	session *discordgo.Session
	t       output.T
	locale  string
}

func NewRenderer(session *discordgo.Session, t output.T, locale string) *Renderer {
	return &Renderer{session: session, t: t, locale: locale}
}

func (r *Renderer) RenderRoster(ctx context.Context, roster entities.Roster, messageID string) (string, error) {
	channelID := roster.Event.Scope.ChannelID
	embed := r.RosterEmbed(ctx, roster)

	if messageID != "" {
		if _, err := r.session.ChannelMessageEditEmbed(channelID, messageID, embed, discordgo.WithContext(ctx)); err != nil {
			return "", messageErr("edit roster message", err)
		}
		return messageID, nil
	}

	msg, err := r.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send roster message: %w", err)
	}
	if err := r.session.MessageReactionAdd(channelID, msg.ID, pkgdiscord.ConfirmEmoji, discordgo.WithContext(ctx)); err != nil {
		log.Printf("⚠️ Reaction on roster message %s: %v", msg.ID, err)
	}
	return msg.ID, nil
}

func (r *Renderer) LookupMessage(ctx context.Context, channelID, messageID string) (string, error) {
	msg, err := r.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return "", messageErr("get message", err)
	}
	return msg.ID, nil
}

// RosterEmbed builds the roster embed with member display names.
func (r *Renderer) RosterEmbed(ctx context.Context, roster entities.Roster) *discordgo.MessageEmbed {
	entries := make([]pkgdiscord.RosterEntry, len(roster.Signups))
	for i, s := range roster.Signups {
		entries[i] = pkgdiscord.RosterEntry{
			UserID:      s.UserID,
			DisplayName: r.displayName(ctx, roster.Event.Scope.GuildID, s.UserID),
		}
	}
	return pkgdiscord.BuildRosterEmbed(r.t, r.locale, roster.Event, entries)
}

// displayName returns "" when the member cannot be resolved; the roster then
// falls back to a mention.
func (r *Renderer) displayName(ctx context.Context, guildID, userID string) string {
	if m, err := r.session.State.Member(guildID, userID); err == nil {
		return resolveDisplayName(m)
	}
	m, err := r.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return ""
	}
	return resolveDisplayName(m)
}

func messageErr(op string, err error) error {
	if isUnknownMessage(err) {
		return output.ErrMessageNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
