package application

import (
	"context"
	"errors"
	"testing"

	"eventbot/internal/domain"
)

func TestStartCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.createEvent(t, "Night Race", "NR", capacity(4))
	if _, err := f.signups.Join(ctx, e, userA); err != nil {
		t.Fatalf("Join: %v", err)
	}

	check, err := f.checks.StartCheck(ctx, "nr", scope, modID)
	if err != nil {
		t.Fatalf("StartCheck: %v", err)
	}
	if check.EventID != e.ID || check.MessageID != "msg-1" {
		t.Fatalf("unexpected check: %+v", check)
	}
	if len(f.renderer.calls) != 1 || f.renderer.calls[0].MessageID != "" {
		t.Fatalf("expected one fresh render, got %+v", f.renderer.calls)
	}
	roster := f.renderer.calls[0].Roster
	if roster.Event.ParticipantCount != 1 || len(roster.Signups) != 1 || roster.Signups[0].UserID != userA {
		t.Fatalf("rendered roster = %+v", roster)
	}
}

func TestStartCheckNonModeratorIsSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createEvent(t, "Night Race", "NR", nil)

	check, err := f.checks.StartCheck(ctx, "NR", scope, nobody)
	if check != nil || err != nil {
		t.Fatalf("StartCheck = %+v, %v; want nil, nil", check, err)
	}
	// Authorization is checked before the event is resolved.
	check, err = f.checks.StartCheck(ctx, "missing", scope, nobody)
	if check != nil || err != nil {
		t.Fatalf("StartCheck = %+v, %v; want nil, nil", check, err)
	}
	if len(f.renderer.calls) != 0 || len(f.store.checks) != 0 {
		t.Fatal("no message and no record expected")
	}
}

func TestStartCheckUnknownEvent(t *testing.T) {
	f := newFixture(t)
	if _, err := f.checks.StartCheck(context.Background(), "NR", scope, modID); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestStartCheckRenderFailureRecordsNothing(t *testing.T) {
	f := newFixture(t)
	f.createEvent(t, "Night Race", "NR", nil)
	f.renderer.failing = true
	if _, err := f.checks.StartCheck(context.Background(), "NR", scope, modID); err == nil {
		t.Fatal("expected render error")
	}
	if len(f.store.checks) != 0 {
		t.Fatal("no check must be recorded without a message")
	}
}

func TestRosterChangeUpdatesLatestCheckOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.createEvent(t, "Night Race", "NR", nil)

	first, err := f.checks.StartCheck(ctx, "NR", scope, modID)
	if err != nil {
		t.Fatalf("StartCheck: %v", err)
	}
	second, err := f.checks.StartCheck(ctx, "NR", scope, modID)
	if err != nil {
		t.Fatalf("StartCheck: %v", err)
	}
	checks, _ := f.checks.ListChecks(ctx, e.ID)
	if len(checks) != 2 || first.MessageID == second.MessageID {
		t.Fatalf("checks = %+v", checks)
	}

	if _, err := f.signups.Join(ctx, e, userA); err != nil {
		t.Fatalf("Join: %v", err)
	}
	edits := f.renderer.edits()
	if len(edits) != 1 || edits[0].MessageID != second.MessageID {
		t.Fatalf("edits = %+v, want one edit of %s", edits, second.MessageID)
	}
	if edits[0].Roster.Event.ParticipantCount != 1 {
		t.Fatalf("edited roster count = %d, want 1", edits[0].Roster.Event.ParticipantCount)
	}
}

func TestRosterChangeWithoutCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.createEvent(t, "Night Race", "NR", nil)
	if _, err := f.signups.Join(ctx, e, userA); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(f.renderer.calls) != 0 {
		t.Fatalf("renders = %d, want 0", len(f.renderer.calls))
	}
}

func TestRosterChangeMessageGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.createEvent(t, "Night Race", "NR", nil)
	check, err := f.checks.StartCheck(ctx, "NR", scope, modID)
	if err != nil {
		t.Fatalf("StartCheck: %v", err)
	}
	f.renderer.gone[check.MessageID] = true

	if _, err := f.signups.Join(ctx, e, userA); err != nil {
		t.Fatalf("Join must succeed even if the check message is gone: %v", err)
	}
	if len(f.renderer.edits()) != 0 {
		t.Fatal("no edit expected for a deleted message")
	}
	latest, err := f.checks.LatestCheck(ctx, e.ID)
	if err != nil || latest == nil || latest.ID != check.ID {
		t.Fatalf("check record must be kept, got %+v, %v", latest, err)
	}
}

func TestRosterChangeRenderFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.createEvent(t, "Night Race", "NR", nil)
	if _, err := f.checks.StartCheck(ctx, "NR", scope, modID); err != nil {
		t.Fatalf("StartCheck: %v", err)
	}
	f.renderer.failing = true
	if _, err := f.signups.Join(ctx, e, userA); err != nil {
		t.Fatalf("Join: %v", err)
	}
}

func TestLatestCheckNone(t *testing.T) {
	f := newFixture(t)
	check, err := f.checks.LatestCheck(context.Background(), 42)
	if check != nil || err != nil {
		t.Fatalf("LatestCheck = %+v, %v; want nil, nil", check, err)
	}
}
