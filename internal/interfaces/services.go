package interfaces

import (
	"context"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"github.com/Kabachel/FeedingKittiesBot/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, chatID int64, firstName, lastName, username string) (*domain.User, bool, error)
	GetByChatID(ctx context.Context, chatID int64) (*domain.User, error)
	DeleteUserData(ctx context.Context, chatID int64) error
}

// RegistrationServiceInterface defines the contract for the cat
// registration flow
type RegistrationServiceInterface interface {
	Start(ctx context.Context, chatID int64) (services.StepOutcome, error)
	Advance(ctx context.Context, chatID int64, input string) (services.StepOutcome, error)
}

// FeedingServiceInterface defines the contract for feeding operations
type FeedingServiceInterface interface {
	Feed(ctx context.Context, chatID int64, catID uint) (services.FeedResult, error)
	ChooseCat(ctx context.Context, chatID int64, catID uint) (*domain.Cat, error)
	DeleteCat(ctx context.Context, chatID int64, catID uint) error
	ListCats(ctx context.Context, chatID int64) ([]domain.Cat, error)
	ResetAllCounts(ctx context.Context) error
}
