package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

// Invocation is one chat message addressed to the bot.
type Invocation struct {
	ID       string // correlation id for logs
	Scope    entities.Scope
	AuthorID string
	Content  string
}

// Reply is what the bot answers in the channel. An empty reply sends nothing.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

func (r Reply) empty() bool { return r.Content == "" && r.Embed == nil }

type rosterEmbedder interface {
	RosterEmbed(ctx context.Context, roster entities.Roster) *discordgo.MessageEmbed
}

// Handler runs event commands against the use cases.
type Handler struct {
	eventUseCase        input.EventUseCase
	signupUseCase       input.SignupUseCase
	confirmationUseCase input.ConfirmationUseCase
	embeds              rosterEmbedder
	t                   output.T
	prefix              string
	locale              string
}

func NewHandler(
	eventUseCase input.EventUseCase,
	signupUseCase input.SignupUseCase,
	confirmationUseCase input.ConfirmationUseCase,
	embeds rosterEmbedder,
	t output.T,
	prefix, locale string,
) *Handler {
	return &Handler{
		eventUseCase:        eventUseCase,
		signupUseCase:       signupUseCase,
		confirmationUseCase: confirmationUseCase,
		embeds:              embeds,
		t:                   t,
		prefix:              prefix,
		locale:              locale,
	}
}

// Execute parses and runs inv. It reports false when the message is not a command.
func (h *Handler) Execute(ctx context.Context, inv Invocation) (Reply, bool) {
	cmd, ok := ParseCommand(h.prefix, inv.Content)
	if !ok {
		return Reply{}, false
	}
	log.Printf("📨 [%s] %s by %s in %s/%s", inv.ID, cmd.Name, inv.AuthorID, inv.Scope.GuildID, inv.Scope.ChannelID)

	var (
		reply Reply
		err   error
	)
	switch cmd.Name {
	case cmdCreate:
		reply, err = h.handleCreate(ctx, inv, cmd.Args)
	case cmdClose:
		reply, err = h.handleClose(ctx, inv, cmd.Args)
	case cmdActive:
		reply, err = h.handleActive(ctx, inv)
	case cmdSignup:
		reply, err = h.handleSignup(ctx, inv, cmd.Args)
	case cmdUnsign:
		reply, err = h.handleUnsign(ctx, inv, cmd.Args)
	case cmdSignups:
		reply, err = h.handleSignups(ctx, inv, cmd.Args)
	case cmdBulkAdd:
		reply, err = h.handleBulkAdd(ctx, inv, cmd.Args)
	case cmdRemove:
		reply, err = h.handleRemove(ctx, inv, cmd.Args)
	case cmdConfirm:
		reply, err = h.handleConfirm(ctx, inv, cmd.Args)
	case cmdHelp:
		reply = h.text("help.text", map[string]any{"Prefix": h.prefix})
	default:
		reply = h.text("command.unknown", map[string]any{"Prefix": h.prefix})
	}
	if err != nil {
		if domain.Code(err) == "" || domain.Code(err) == domain.ErrStorageUnavailable.Code() {
			log.Printf("❌ [%s] %s: %v", inv.ID, cmd.Name, err)
		}
		return Reply{Content: pkgdiscord.ErrorMessage(h.t, h.locale, err)}, true
	}
	return reply, true
}

func (h *Handler) text(key string, data map[string]any) Reply {
	return Reply{Content: h.t.T(h.locale, key, data)}
}

func (h *Handler) usage(name string) Reply {
	return h.text("command.usage", map[string]any{"Prefix": h.prefix, "Usage": commandUsage[name]})
}

// rosterReply attaches the event's current roster to content. A roster that cannot
// be loaded is logged and left out.
func (h *Handler) rosterReply(ctx context.Context, inv Invocation, event *entities.Event, content string) Reply {
	reply := Reply{Content: content}
	roster, err := h.signupUseCase.Roster(ctx, event)
	if err != nil {
		log.Printf("⚠️ [%s] roster for event %d: %v", inv.ID, event.ID, err)
		return reply
	}
	reply.Embed = h.embeds.RosterEmbed(ctx, roster)
	return reply
}
