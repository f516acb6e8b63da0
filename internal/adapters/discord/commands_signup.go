package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

func (h *Handler) handleSignup(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	name := joinedName(args)
	if name == "" {
		return h.usage(cmdSignup), nil
	}
	event, err := h.eventUseCase.ResolveActiveEvent(ctx, name, inv.Scope)
	if err != nil {
		return Reply{}, err
	}
	if _, err := h.signupUseCase.Join(ctx, event, inv.AuthorID); err != nil {
		return Reply{}, err
	}
	content := h.t.T(h.locale, "signup.joined", map[string]any{"Mention": pkgdiscord.Mention(inv.AuthorID), "Name": event.Name})
	return h.rosterReply(ctx, inv, event, content), nil
}

func (h *Handler) handleUnsign(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	name := joinedName(args)
	if name == "" {
		return h.usage(cmdUnsign), nil
	}
	event, err := h.eventUseCase.ResolveActiveEvent(ctx, name, inv.Scope)
	if err != nil {
		return Reply{}, err
	}
	if err := h.signupUseCase.Unsign(ctx, event, inv.AuthorID); err != nil {
		return Reply{}, err
	}
	content := h.t.T(h.locale, "signup.unsigned", map[string]any{"Mention": pkgdiscord.Mention(inv.AuthorID), "Name": event.Name})
	return h.rosterReply(ctx, inv, event, content), nil
}

func (h *Handler) handleSignups(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	name := joinedName(args)
	if name == "" {
		return h.usage(cmdSignups), nil
	}
	event, err := h.eventUseCase.ResolveActiveEvent(ctx, name, inv.Scope)
	if err != nil {
		return Reply{}, err
	}
	roster, err := h.signupUseCase.Roster(ctx, event)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Embed: h.embeds.RosterEmbed(ctx, roster)}, nil
}

func (h *Handler) handleBulkAdd(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	return h.handleBulk(ctx, inv, cmdBulkAdd, args, h.signupUseCase.BulkAdd)
}

func (h *Handler) handleRemove(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	return h.handleBulk(ctx, inv, cmdRemove, args, h.signupUseCase.Remove)
}

type bulkFunc func(ctx context.Context, event *entities.Event, userIDs []string, requesterID string) ([]entities.SignupOutcome, error)

func (h *Handler) handleBulk(ctx context.Context, inv Invocation, name string, args []string, run bulkFunc) (Reply, error) {
	query, userIDs := splitTargets(args)
	if query == "" {
		return h.usage(name), nil
	}
	if len(userIDs) == 0 {
		return h.text("command.no_users", nil), nil
	}
	event, err := h.eventUseCase.ResolveActiveEvent(ctx, query, inv.Scope)
	if err != nil {
		return Reply{}, err
	}
	outcomes, err := run(ctx, event, userIDs, inv.AuthorID)
	if err != nil {
		return Reply{}, err
	}
	for _, o := range outcomes {
		if o.Err != nil {
			log.Printf("❌ [%s] %s %s: %v", inv.ID, name, o.UserID, o.Err)
		}
	}
	return h.rosterReply(ctx, inv, event, h.outcomeText(outcomes)), nil
}

// splitTargets separates the event name from the user mentions that end the
// argument list.
func splitTargets(args []string) (string, []string) {
	i := len(args)
	for i > 0 && strings.HasPrefix(args[i-1], "<@") {
		if _, ok := pkgdiscord.ParseUserMention(args[i-1]); !ok {
			break
		}
		i--
	}
	userIDs := make([]string, 0, len(args)-i)
	for _, a := range args[i:] {
		id, _ := pkgdiscord.ParseUserMention(a)
		userIDs = append(userIDs, id)
	}
	return joinedName(args[:i]), userIDs
}

// outcomeText lists one line per user: "<@id>: added".
func (h *Handler) outcomeText(outcomes []entities.SignupOutcome) string {
	lines := make([]string, len(outcomes))
	for i, o := range outcomes {
		lines[i] = fmt.Sprintf("%s: %s", pkgdiscord.Mention(o.UserID), h.t.T(h.locale, "signup.result."+string(o.Result), nil))
	}
	return strings.Join(lines, "\n")
}
