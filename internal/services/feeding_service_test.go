package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/repository"
)

func newFeedingFixture(t *testing.T, feedsPerDay, feedsToday int) (*FeedingService, *repository.MemoryStore, *domain.Cat) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	user := &domain.User{ChatID: testChatID, RegisteredAt: time.Now()}
	if err := store.Users().Save(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	cat := &domain.Cat{
		UserChatID:  testChatID,
		Name:        "Mochi",
		GramsPerDay: 50,
		FeedsPerDay: feedsPerDay,
		FeedsToday:  feedsToday,
	}
	if err := store.Cats().Save(ctx, cat); err != nil {
		t.Fatalf("seed cat: %v", err)
	}
	return NewFeedingService(store.Cats(), store), store, cat
}

func TestFeedProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, cat := newFeedingFixture(t, 3, 0)

	result, err := svc.Feed(ctx, testChatID, cat.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !result.Fed || result.Full {
		t.Errorf("expected progress variant, got %+v", result)
	}
	if result.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", result.Remaining)
	}
	if result.Cat.FeedsToday != 1 {
		t.Errorf("FeedsToday = %d, want 1", result.Cat.FeedsToday)
	}
}

func TestFeedReachesTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 2, 1)

	result, err := svc.Feed(ctx, testChatID, cat.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !result.Fed || !result.Full {
		t.Errorf("expected fully-fed variant, got %+v", result)
	}

	stored, _ := store.Cats().GetByID(ctx, cat.ID)
	if stored.FeedsToday != 2 {
		t.Errorf("FeedsToday = %d, want 2", stored.FeedsToday)
	}
}

func TestFeedAlreadyFullIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 2, 2)

	result, err := svc.Feed(ctx, testChatID, cat.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if result.Fed {
		t.Error("feed past the target must not mutate the counter")
	}

	stored, _ := store.Cats().GetByID(ctx, cat.ID)
	if stored.FeedsToday != 2 {
		t.Errorf("FeedsToday = %d, want 2", stored.FeedsToday)
	}
	if stored.FeedsToday > stored.FeedsPerDay {
		t.Error("invariant violated: FeedsToday > FeedsPerDay")
	}
}

func TestFeedRejectsForeignCat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 3, 0)

	// A second user tries to feed the first user's cat via a forged payload.
	if err := store.Users().Save(ctx, &domain.User{ChatID: 200, RegisteredAt: time.Now()}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.Feed(ctx, 200, cat.ID); !errors.Is(err, apperrors.ErrUnknownCat) {
		t.Fatalf("expected ErrUnknownCat, got %v", err)
	}

	stored, _ := store.Cats().GetByID(ctx, cat.ID)
	if stored.FeedsToday != 0 {
		t.Errorf("foreign feed mutated the cat: FeedsToday = %d", stored.FeedsToday)
	}
}

func TestFeedDeletedCat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 3, 0)

	if err := store.Cats().Delete(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Feed(ctx, testChatID, cat.ID); !errors.Is(err, apperrors.ErrUnknownCat) {
		t.Fatalf("expected ErrUnknownCat for a deleted cat, got %v", err)
	}
}

func TestChooseCatSetsSelection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 3, 0)

	chosen, err := svc.ChooseCat(ctx, testChatID, cat.ID)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if chosen.Name != "Mochi" {
		t.Errorf("chosen cat = %s, want Mochi", chosen.Name)
	}

	user, _ := store.Users().GetByChatID(ctx, testChatID)
	if user.SelectedCatID == nil || *user.SelectedCatID != cat.ID {
		t.Error("selection was not persisted")
	}
}

func TestChooseCatRejectsForeignCat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 3, 0)

	if err := store.Users().Save(ctx, &domain.User{ChatID: 200, RegisteredAt: time.Now()}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.ChooseCat(ctx, 200, cat.ID); !errors.Is(err, apperrors.ErrUnknownCat) {
		t.Fatalf("expected ErrUnknownCat, got %v", err)
	}
}

func TestDeleteCatClearsSelection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, cat := newFeedingFixture(t, 3, 0)

	if _, err := svc.ChooseCat(ctx, testChatID, cat.ID); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if err := svc.DeleteCat(ctx, testChatID, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Cats().GetByID(ctx, cat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("cat should be gone")
	}
	user, _ := store.Users().GetByChatID(ctx, testChatID)
	if user.SelectedCatID != nil {
		t.Error("selection should be cleared with the cat")
	}
}

func TestResetAllCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewFeedingService(store.Cats(), store)

	for i, feeds := range []int{0, 1, 2} {
		cat := &domain.Cat{UserChatID: int64(i + 1), Name: "c", GramsPerDay: 10, FeedsPerDay: 3, FeedsToday: feeds}
		if err := store.Cats().Save(ctx, cat); err != nil {
			t.Fatalf("seed cat: %v", err)
		}
	}

	if err := svc.ResetAllCounts(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for id := uint(1); id <= 3; id++ {
		cat, err := store.Cats().GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if cat.FeedsToday != 0 {
			t.Errorf("cat %d FeedsToday = %d, want 0", id, cat.FeedsToday)
		}
	}
}
