package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
)

func (h *Handler) handleCreate(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	if len(args) < 2 || len(args) > 3 {
		return h.usage(cmdCreate), nil
	}
	req := input.CreateEventRequest{Name: args[0], ShortName: args[1], Scope: inv.Scope}
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return Reply{}, fmt.Errorf("%w: capacity %q", domain.ErrInvalidEvent, args[2])
		}
		req.Capacity = &n
	}

	event, err := h.eventUseCase.CreateEvent(ctx, req, inv.AuthorID)
	if err != nil {
		return Reply{}, err
	}
	data := map[string]any{"Name": event.Name, "ShortName": event.ShortName}
	if event.SpaceLimited() {
		data["Capacity"] = *event.Capacity
		return h.text("event.created_limited", data), nil
	}
	return h.text("event.created", data), nil
}

func (h *Handler) handleClose(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	name := joinedName(args)
	if name == "" {
		return h.usage(cmdClose), nil
	}
	event, err := h.eventUseCase.CloseEvent(ctx, name, inv.Scope, inv.AuthorID)
	if err != nil {
		return Reply{}, err
	}
	return h.text("event.closed", map[string]any{"Name": event.Name}), nil
}

func (h *Handler) handleActive(ctx context.Context, inv Invocation) (Reply, error) {
	events, err := h.eventUseCase.ListActiveEvents(ctx, inv.Scope)
	if err != nil {
		return Reply{}, err
	}
	if len(events) == 0 {
		return h.text("event.none_active", nil), nil
	}

	var b strings.Builder
	b.WriteString(h.t.T(h.locale, "event.active_header", nil))
	for i := range events {
		e := &events[i]
		fmt.Fprintf(&b, "\n- **%s** (%s): %s", e.DisplayName(events), e.ShortName, h.countText(e))
	}
	return Reply{Content: b.String()}, nil
}

func (h *Handler) countText(e *entities.Event) string {
	if e.SpaceLimited() {
		return h.t.T(h.locale, "roster.count_limited", map[string]any{"Count": e.ParticipantCount, "Capacity": *e.Capacity})
	}
	return h.t.T(h.locale, "roster.count", map[string]any{"Count": e.ParticipantCount})
}

func (h *Handler) handleConfirm(ctx context.Context, inv Invocation, args []string) (Reply, error) {
	name := joinedName(args)
	if name == "" {
		return h.usage(cmdConfirm), nil
	}
	// The check posts its own roster message; non-moderators get no answer.
	_, err := h.confirmationUseCase.StartCheck(ctx, name, inv.Scope, inv.AuthorID)
	return Reply{}, err
}
