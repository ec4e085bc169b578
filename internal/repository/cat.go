package repository

import (
	"context"
	"errors"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatRepository handles cat data operations backed by gorm.
type CatRepository struct {
	db *gorm.DB
}

// NewCatRepository creates a new cat repository
func NewCatRepository(db *gorm.DB) *CatRepository {
	return &CatRepository{db: db}
}

// GetByID gets a cat by its ID
func (r *CatRepository) GetByID(ctx context.Context, id uint) (*domain.Cat, error) {
	var cat domain.Cat
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// GetByIDForUpdate gets a cat by its ID holding a row lock for the duration
// of the surrounding transaction.
func (r *CatRepository) GetByIDForUpdate(ctx context.Context, id uint) (*domain.Cat, error) {
	var cat domain.Cat
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// ListByOwner lists all cats owned by the given chat ID, oldest first.
func (r *CatRepository) ListByOwner(ctx context.Context, chatID int64) ([]domain.Cat, error) {
	var cats []domain.Cat
	if err := r.db.WithContext(ctx).
		Where("user_chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// Save creates or updates a cat
func (r *CatRepository) Save(ctx context.Context, cat *domain.Cat) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete removes a cat by ID
func (r *CatRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Cat{}, id).Error
}

// DeleteByOwner removes all cats owned by the given chat ID
func (r *CatRepository) DeleteByOwner(ctx context.Context, chatID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Cat{}, "user_chat_id = ?", chatID).Error
}

// ResetAllFeeds zeroes feeds_today for every cat
func (r *CatRepository) ResetAllFeeds(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&domain.Cat{}).
		Where("feeds_today <> 0").
		Update("feeds_today", 0).Error
}
