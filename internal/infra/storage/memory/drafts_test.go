package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/domain/catalog"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra/storage/memory"
)

func newDraft(t *testing.T, sessionID string) *reservation.Draft {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	draft, err := reservation.NewDraft(reservation.CreateParams{
		SessionID: sessionID,
		Property: &catalog.Property{
			ID:          "prop-1",
			Title:       "Seaside loft",
			NightlyRate: money.Must(10000, "USD"),
		},
		Range:     dr,
		Travelers: 2,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	return draft
}

func TestDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDraftStore(0)

	if _, err := store.Load(ctx, "sess-1"); !errors.Is(err, reservation.ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}

	draft := newDraft(t, "sess-1")
	if err := store.Save(ctx, "sess-1", draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "sess-1" || got.PropertyID != "prop-1" {
		t.Fatalf("loaded wrong draft: %+v", got)
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "sess-1"); !errors.Is(err, reservation.ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound after delete, got %v", err)
	}
}

func TestDraftStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDraftStore(0)

	if err := store.Save(ctx, "sess-a", newDraft(t, "sess-a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "sess-b", newDraft(t, "sess-b")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	a, err := store.Load(ctx, "sess-a")
	if err != nil {
		t.Fatalf("Load sess-a: %v", err)
	}
	b, err := store.Load(ctx, "sess-b")
	if err != nil {
		t.Fatalf("Load sess-b: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("sessions must not share drafts")
	}
}

func TestDraftStoreLoadedDraftDoesNotAliasStoredState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDraftStore(0)

	if err := store.Save(ctx, "sess-1", newDraft(t, "sess-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutate a loaded copy past the terminal step without saving it back.
	working, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	quote, err := working.Price()
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	for !working.Step.Terminal() {
		working.Advance(quote, time.Now().UTC())
	}

	stored, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Step != reservation.StepBrowsing {
		t.Fatalf("unsaved mutation leaked into the store: step %s", stored.Step)
	}
}

func TestDraftStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDraftStore(time.Minute)

	if err := store.Save(ctx, "sess-1", newDraft(t, "sess-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Load(ctx, "sess-1"); err != nil {
		t.Fatalf("Load before expiry: %v", err)
	}

	store.SetClock(func() time.Time { return time.Now().Add(2 * time.Minute) })
	if _, err := store.Load(ctx, "sess-1"); !errors.Is(err, reservation.ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound after expiry, got %v", err)
	}
}
