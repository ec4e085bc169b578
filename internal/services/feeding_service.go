package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
)

// FeedResult describes the outcome of a feed action.
type FeedResult struct {
	Cat *domain.Cat
	// Fed reports whether the counter was incremented. False means the cat
	// already reached its daily target before this action.
	Fed bool
	// Full is set when this feed reached the daily target.
	Full      bool
	Remaining int
}

// FeedingService enforces daily feed limits and performs the periodic reset.
type FeedingService struct {
	cats domain.CatRepository
	tx   domain.TxManager
}

func NewFeedingService(cats domain.CatRepository, tx domain.TxManager) *FeedingService {
	return &FeedingService{cats: cats, tx: tx}
}

// Feed increments the cat's daily counter unless the target is already
// reached. The cat is re-read under a row lock inside the transaction, so
// two rapid feed actions on the same cat cannot both increment past the
// target. Ownership is re-validated here rather than trusted from the
// button payload.
func (s *FeedingService) Feed(ctx context.Context, chatID int64, catID uint) (FeedResult, error) {
	var result FeedResult
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		cat, err := cats.GetByIDForUpdate(ctx, catID)
		if err != nil {
			return err
		}
		if cat.UserChatID != chatID {
			return apperrors.ErrUnknownCat
		}

		if cat.FeedsToday >= cat.FeedsPerDay {
			result = FeedResult{Cat: cat}
			return nil
		}

		cat.FeedsToday++
		if err := cats.Save(ctx, cat); err != nil {
			return fmt.Errorf("failed to save cat: %w", err)
		}

		result = FeedResult{
			Cat:       cat,
			Fed:       true,
			Full:      cat.FeedsToday == cat.FeedsPerDay,
			Remaining: cat.FeedsPerDay - cat.FeedsToday,
		}
		return nil
	})
	if err != nil {
		return FeedResult{}, s.classify(err)
	}

	logger.Info("Feed recorded", "chat_id", chatID, "cat_id", catID, "fed", result.Fed, "feeds_today", result.Cat.FeedsToday)
	return result, nil
}

// ChooseCat validates ownership and marks the cat as the user's selection.
func (s *FeedingService) ChooseCat(ctx context.Context, chatID int64, catID uint) (*domain.Cat, error) {
	var chosen *domain.Cat
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		cat, err := cats.GetByID(ctx, catID)
		if err != nil {
			return err
		}
		if cat.UserChatID != chatID {
			return apperrors.ErrUnknownCat
		}

		user, err := users.GetByChatID(ctx, chatID)
		if err != nil {
			return err
		}
		user.SelectedCatID = &cat.ID
		if err := users.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to save selection: %w", err)
		}

		chosen = cat
		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}
	return chosen, nil
}

// DeleteCat validates ownership, deletes the cat and clears a selection
// pointing at it.
func (s *FeedingService) DeleteCat(ctx context.Context, chatID int64, catID uint) error {
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		cat, err := cats.GetByID(ctx, catID)
		if err != nil {
			return err
		}
		if cat.UserChatID != chatID {
			return apperrors.ErrUnknownCat
		}

		if err := cats.Delete(ctx, catID); err != nil {
			return fmt.Errorf("failed to delete cat: %w", err)
		}

		user, err := users.GetByChatID(ctx, chatID)
		if err != nil {
			return err
		}
		if user.SelectedCatID != nil && *user.SelectedCatID == catID {
			user.SelectedCatID = nil
			if err := users.Save(ctx, user); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return s.classify(err)
	}

	logger.Info("Cat deleted", "chat_id", chatID, "cat_id", catID)
	return nil
}

// ListCats lists the user's cats, oldest first.
func (s *FeedingService) ListCats(ctx context.Context, chatID int64) ([]domain.Cat, error) {
	cats, err := s.cats.ListByOwner(ctx, chatID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return cats, nil
}

// ResetAllCounts zeroes feeds_today for every cat in the system. Invoked on
// the daily schedule.
func (s *FeedingService) ResetAllCounts(ctx context.Context) error {
	if err := s.cats.ResetAllFeeds(ctx); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	logger.Info("Daily feed counters reset")
	return nil
}

func (s *FeedingService) classify(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.ErrUnknownCat
	}
	return apperrors.NewDatabaseError(err)
}
