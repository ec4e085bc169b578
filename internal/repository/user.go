package repository

import (
	"context"
	"errors"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user data operations backed by gorm.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByChatID gets a user by their telegram chat ID
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Save creates or updates a user
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user row
func (r *UserRepository) Delete(ctx context.Context, chatID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, "chat_id = ?", chatID).Error
}
