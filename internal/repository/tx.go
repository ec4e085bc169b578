package repository

import (
	"context"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"gorm.io/gorm"
)

// TxManager runs units of work inside a single gorm transaction. The
// repositories handed to the callback are scoped to that transaction, so a
// flow-state advance and the cat mutation it belongs to commit together.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared connection.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Do executes fn within a transaction, rolling back on error.
func (m *TxManager) Do(ctx context.Context, fn func(users domain.UserRepository, cats domain.CatRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx), NewCatRepository(tx))
	})
}
