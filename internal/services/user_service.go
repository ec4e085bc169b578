package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
)

type UserService struct {
	users domain.UserRepository
	tx    domain.TxManager
}

func NewUserService(users domain.UserRepository, tx domain.TxManager) *UserService {
	return &UserService{users: users, tx: tx}
}

// RegisterUser creates a user for the chat if none exists. First write wins:
// a repeated /start leaves the stored record untouched. The second result
// reports whether the user was created by this call.
func (s *UserService) RegisterUser(ctx context.Context, chatID int64, firstName, lastName, username string) (*domain.User, bool, error) {
	existing, err := s.users.GetByChatID(ctx, chatID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, apperrors.NewDatabaseError(err)
	}

	user := &domain.User{
		ChatID:       chatID,
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		RegisteredAt: time.Now(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, apperrors.NewDatabaseError(err)
	}

	logger.Info("User registered", "chat_id", chatID, "username", username)
	return user, true, nil
}

// GetByChatID returns the user for the chat, or ErrNotRegistered.
func (s *UserService) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	user, err := s.users.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperrors.ErrNotRegistered
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// DeleteUserData removes the user and every cat they own in one transaction.
func (s *UserService) DeleteUserData(ctx context.Context, chatID int64) error {
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		if _, err := users.GetByChatID(ctx, chatID); err != nil {
			return err
		}
		if err := cats.DeleteByOwner(ctx, chatID); err != nil {
			return fmt.Errorf("failed to delete cats: %w", err)
		}
		if err := users.Delete(ctx, chatID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperrors.ErrNotRegistered
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.Info("User data cleared", "chat_id", chatID)
	return nil
}
