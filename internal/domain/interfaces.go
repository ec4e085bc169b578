package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when the requested record does not
// exist. Implementations wrap their driver's not-found error into this one.
var ErrNotFound = errors.New("record not found")

// UserRepository handles user persistence.
type UserRepository interface {
	GetByChatID(ctx context.Context, chatID int64) (*User, error)
	Save(ctx context.Context, user *User) error
	// Delete removes the user row only; cascading the owned cats is the
	// service layer's job so it happens inside one transaction.
	Delete(ctx context.Context, chatID int64) error
}

// CatRepository handles cat persistence.
type CatRepository interface {
	GetByID(ctx context.Context, id uint) (*Cat, error)
	// GetByIDForUpdate reads the cat with a row lock when running inside a
	// transaction, so concurrent feed actions on the same cat serialize.
	GetByIDForUpdate(ctx context.Context, id uint) (*Cat, error)
	ListByOwner(ctx context.Context, chatID int64) ([]Cat, error)
	Save(ctx context.Context, cat *Cat) error
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, chatID int64) error
	// ResetAllFeeds zeroes feeds_today for every cat in the store.
	ResetAllFeeds(ctx context.Context) error
}

// TxManager runs a function against transactional repository views. All
// repository calls made through the passed repositories commit or roll back
// together, which keeps a flow-state advance and the matching cat mutation
// atomic.
type TxManager interface {
	Do(ctx context.Context, fn func(users UserRepository, cats CatRepository) error) error
}
