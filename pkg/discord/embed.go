package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

const (
	embedColor = 0x5865F2

	// Discord rejects embed descriptions above 4096 characters.
	maxDescription = 4096
)

// ConfirmEmoji is the reaction added under every roster message.
const ConfirmEmoji = "✅"

// RosterEntry is one participant line, in signup order.
type RosterEntry struct {
	UserID      string
	DisplayName string
}

// BuildRosterEmbed renders a roster as an embed: the count against the capacity
// followed by the ordinal-numbered participants.
func BuildRosterEmbed(t output.T, locale string, event entities.Event, entries []RosterEntry) *discordgo.MessageEmbed {
	var count string
	if event.SpaceLimited() {
		count = t.T(locale, "roster.count_limited", map[string]any{"Count": len(entries), "Capacity": *event.Capacity})
	} else {
		count = t.T(locale, "roster.count", map[string]any{"Count": len(entries)})
	}

	var b strings.Builder
	b.WriteString("**" + count + "**\n")
	if len(entries) == 0 {
		b.WriteString(t.T(locale, "roster.empty", nil))
	}
	for i, e := range entries {
		line := fmt.Sprintf("%s. %s\n", humanize.Ordinal(i+1), rosterName(e))
		if b.Len()+len(line) > maxDescription-len("…") {
			b.WriteString("…")
			break
		}
		b.WriteString(line)
	}

	return &discordgo.MessageEmbed{
		Title:       t.T(locale, "roster.title", map[string]any{"Name": event.Name}),
		Description: strings.TrimRight(b.String(), "\n"),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: t.T(locale, "roster.footer", nil)},
	}
}

func rosterName(e RosterEntry) string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return Mention(e.UserID)
}
