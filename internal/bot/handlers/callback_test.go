package handlers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/keyboards"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"github.com/Kabachel/FeedingKittiesBot/internal/repository"
)

func seedCat(t *testing.T, store *repository.MemoryStore, chatID int64, name string, feedsPerDay int) uint {
	t.Helper()
	cat := &domain.Cat{UserChatID: chatID, Name: name, GramsPerDay: 50, FeedsPerDay: feedsPerDay}
	if err := store.Cats().Save(context.Background(), cat); err != nil {
		t.Fatalf("seed cat: %v", err)
	}
	return cat.ID
}

func selectCat(t *testing.T, store *repository.MemoryStore, chatID int64, catID uint) {
	t.Helper()
	ctx := context.Background()
	user, err := store.Users().GetByChatID(ctx, chatID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.SelectedCatID = &catID
	if err := store.Users().Save(ctx, user); err != nil {
		t.Fatalf("save user: %v", err)
	}
}

func TestCallbackAcksFirst(t *testing.T) {
	t.Parallel()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)

	if err := h.Handle(context.Background(), callbackUpdate(testChatID, keyboards.CallbackCancelDelete)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(r.acks) != 1 || r.acks[0] != "cb-1" {
		t.Errorf("acks = %v, want [cb-1]", r.acks)
	}
}

func TestCallbackNotRegistered(t *testing.T) {
	t.Parallel()
	h, r, _ := newFixture(t)

	if err := h.Handle(context.Background(), callbackUpdate(testChatID, keyboards.CallbackFeed)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := r.lastSend(t).text; !strings.Contains(got, "not registered") {
		t.Errorf("reply = %q, want not-registered text", got)
	}
}

func TestDeleteDataRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	seedCat(t, store, testChatID, "Mochi", 3)

	// Declining keeps everything.
	if err := h.Handle(ctx, callbackUpdate(testChatID, keyboards.CallbackCancelDelete)); err != nil {
		t.Fatalf("handle cancel: %v", err)
	}
	if got := r.lastEdit(t).text; got != "Hooray! You stay with us!" {
		t.Errorf("cancel edit = %q", got)
	}
	if _, err := store.Users().GetByChatID(ctx, testChatID); err != nil {
		t.Fatalf("cancel must keep the user: %v", err)
	}

	// Confirming removes the user and every cat.
	if err := h.Handle(ctx, callbackUpdate(testChatID, keyboards.CallbackConfirmDelete)); err != nil {
		t.Fatalf("handle confirm: %v", err)
	}
	if got := r.lastEdit(t).text; got != "Your data is cleared" {
		t.Errorf("confirm edit = %q", got)
	}
	if _, err := store.Users().GetByChatID(ctx, testChatID); err == nil {
		t.Error("user should be gone after confirm")
	}
	if cats, _ := store.Cats().ListByOwner(ctx, testChatID); len(cats) != 0 {
		t.Errorf("cats should be gone after confirm, got %d", len(cats))
	}
}

func TestChooseCatCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	id := seedCat(t, store, testChatID, "Mochi", 3)

	data := fmt.Sprintf("%s%d", keyboards.CatPrefix, id)
	if err := h.Handle(ctx, callbackUpdate(testChatID, data)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got := r.lastEdit(t).text; got != "You choose Mochi" {
		t.Errorf("edit = %q", got)
	}
	last := r.lastSend(t)
	if last.text != "What do you want to do?" || last.keyboard == nil {
		t.Errorf("expected action menu, got %+v", last)
	}

	user, _ := store.Users().GetByChatID(ctx, testChatID)
	if user.SelectedCatID == nil || *user.SelectedCatID != id {
		t.Errorf("selection = %v, want %d", user.SelectedCatID, id)
	}
}

func TestChooseCatCallbackRejectsForeignAndStale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	seedUser(t, store, testChatID+1)
	foreign := seedCat(t, store, testChatID+1, "Intruder", 3)

	payloads := []string{
		fmt.Sprintf("%s%d", keyboards.CatPrefix, foreign),
		keyboards.CatPrefix + "9999",
		keyboards.CatPrefix + "garbage",
	}
	for _, data := range payloads {
		if err := h.Handle(ctx, callbackUpdate(testChatID, data)); err != nil {
			t.Fatalf("handle %q: %v", data, err)
		}
		if got := r.lastEdit(t).text; got != staleCatText {
			t.Errorf("edit for %q = %q, want stale-cat text", data, got)
		}
	}

	user, _ := store.Users().GetByChatID(ctx, testChatID)
	if user.SelectedCatID != nil {
		t.Errorf("selection should stay empty, got %d", *user.SelectedCatID)
	}
}

func TestFeedCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	id := seedCat(t, store, testChatID, "Mochi", 2)
	selectCat(t, store, testChatID, id)

	wantEdits := []string{
		"Left to feed: 1 times.\n1/2",
		"Hooray, the cat is fed, enough for today, come back tomorrow!",
		"It's enough for the cat to eat today, come back tomorrow.",
	}
	for i, want := range wantEdits {
		if err := h.Handle(ctx, callbackUpdate(testChatID, keyboards.CallbackFeed)); err != nil {
			t.Fatalf("feed %d: %v", i, err)
		}
		if got := r.lastEdit(t).text; got != want {
			t.Errorf("feed %d edit = %q, want %q", i, got, want)
		}
		// After each feed the chooser is offered again.
		if last := r.lastSend(t); last.text != "Which cat do you want to feed?" {
			t.Errorf("feed %d follow-up = %q", i, last.text)
		}
	}

	cat, err := store.Cats().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("load cat: %v", err)
	}
	if cat.FeedsToday != 2 {
		t.Errorf("FeedsToday = %d, want 2", cat.FeedsToday)
	}
}

func TestFeedCallbackWithoutSelection(t *testing.T) {
	t.Parallel()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)

	if err := h.Handle(context.Background(), callbackUpdate(testChatID, keyboards.CallbackFeed)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := r.lastEdit(t).text; got != staleCatText {
		t.Errorf("edit = %q, want stale-cat text", got)
	}
}

func TestDeleteCatCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	id := seedCat(t, store, testChatID, "Mochi", 3)
	selectCat(t, store, testChatID, id)

	if err := h.Handle(ctx, callbackUpdate(testChatID, keyboards.CallbackDeleteCat)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := r.lastEdit(t).text; got != "Your kitty deleted." {
		t.Errorf("edit = %q", got)
	}

	if cats, _ := store.Cats().ListByOwner(ctx, testChatID); len(cats) != 0 {
		t.Errorf("cat should be deleted, got %d", len(cats))
	}
	user, _ := store.Users().GetByChatID(ctx, testChatID)
	if user.SelectedCatID != nil {
		t.Error("selection should be cleared after delete")
	}

	// The selection is gone, deleting again reports the stale cat.
	if err := h.Handle(ctx, callbackUpdate(testChatID, keyboards.CallbackDeleteCat)); err != nil {
		t.Fatalf("handle repeat: %v", err)
	}
	if got := r.lastEdit(t).text; got != staleCatText {
		t.Errorf("repeat edit = %q, want stale-cat text", got)
	}
}

func TestBackCallbackReopensChooser(t *testing.T) {
	t.Parallel()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)
	seedCat(t, store, testChatID, "Mochi", 3)

	if err := h.Handle(context.Background(), callbackUpdate(testChatID, keyboards.CallbackBack)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	last := r.lastSend(t)
	if last.text != "Which cat do you want to feed?" || last.keyboard == nil {
		t.Errorf("expected chooser, got %+v", last)
	}
}

func TestUnknownCallbackTokenIgnored(t *testing.T) {
	t.Parallel()
	h, r, store := newFixture(t)
	seedUser(t, store, testChatID)

	if err := h.Handle(context.Background(), callbackUpdate(testChatID, "bogus")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(r.sends) != 0 || len(r.edits) != 0 {
		t.Errorf("unknown token should reply nothing, sends=%d edits=%d", len(r.sends), len(r.edits))
	}
}
