package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
	"github.com/Kabachel/FeedingKittiesBot/internal/utils"
)

// StepOutcome describes where the registration flow stands after handling
// one input.
type StepOutcome struct {
	// State is the flow state after the step. FlowNone with Complete set
	// means the final step just committed.
	State    domain.FlowState
	Complete bool
	// Resumed is set when Start found a flow already in progress and
	// re-prompted instead of creating a second one.
	Resumed bool
}

// RegistrationService drives the multi-step cat registration flow. Every
// step commits the cat mutation and the flow-state advance in a single
// transaction; validation failures mutate nothing and never advance.
type RegistrationService struct {
	tx domain.TxManager
}

func NewRegistrationService(tx domain.TxManager) *RegistrationService {
	return &RegistrationService{tx: tx}
}

// Start begins the registration flow for the user, creating an incomplete
// cat and pointing the flow state at it. A user has at most one active flow:
// starting again mid-flow resumes the existing one.
func (s *RegistrationService) Start(ctx context.Context, chatID int64) (StepOutcome, error) {
	var outcome StepOutcome
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		user, err := users.GetByChatID(ctx, chatID)
		if err != nil {
			return err
		}

		if user.ActiveFlow.Active() {
			outcome = StepOutcome{State: user.ActiveFlow, Resumed: true}
			return nil
		}

		cat := &domain.Cat{UserChatID: chatID}
		if err := cats.Save(ctx, cat); err != nil {
			return fmt.Errorf("failed to create cat: %w", err)
		}

		user.ActiveFlow = domain.FlowAwaitingName
		user.PendingCatID = &cat.ID
		if err := users.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to advance flow: %w", err)
		}

		outcome = StepOutcome{State: domain.FlowAwaitingName}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return StepOutcome{}, apperrors.ErrNotRegistered
		}
		return StepOutcome{}, apperrors.NewDatabaseError(err)
	}

	logger.Info("Cat registration flow", "chat_id", chatID, "state", outcome.State, "resumed", outcome.Resumed)
	return outcome, nil
}

// Advance feeds one text input into the flow. The returned outcome carries
// the state to prompt for next. Validation errors are *AppError values of
// the validation type; the flow state and the cat are left untouched on any
// error.
func (s *RegistrationService) Advance(ctx context.Context, chatID int64, input string) (StepOutcome, error) {
	var outcome StepOutcome
	err := s.tx.Do(ctx, func(users domain.UserRepository, cats domain.CatRepository) error {
		user, err := users.GetByChatID(ctx, chatID)
		if err != nil {
			return err
		}
		if !user.ActiveFlow.Active() || user.PendingCatID == nil {
			return apperrors.ErrNoActiveFlow
		}

		cat, err := cats.GetByID(ctx, *user.PendingCatID)
		if err != nil {
			return err
		}

		switch user.ActiveFlow {
		case domain.FlowAwaitingName:
			name := strings.TrimSpace(input)
			if name == "" {
				return apperrors.ErrEmptyName
			}
			cat.Name = name
			user.ActiveFlow = domain.FlowAwaitingGrams

		case domain.FlowAwaitingGrams:
			grams, err := parseAmount(input)
			if err != nil {
				return err
			}
			cat.GramsPerDay = grams
			user.ActiveFlow = domain.FlowAwaitingFeeds

		case domain.FlowAwaitingFeeds:
			feeds, err := parseAmount(input)
			if err != nil {
				return err
			}
			cat.FeedsPerDay = feeds
			user.ActiveFlow = domain.FlowNone
			user.PendingCatID = nil

		default:
			return apperrors.NewInternalError(fmt.Errorf("unrecognized flow state %q", user.ActiveFlow))
		}

		if err := cats.Save(ctx, cat); err != nil {
			return fmt.Errorf("failed to save cat: %w", err)
		}
		if err := users.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to advance flow: %w", err)
		}

		outcome = StepOutcome{State: user.ActiveFlow, Complete: !user.ActiveFlow.Active()}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return StepOutcome{}, appErr
		}
		if errors.Is(err, domain.ErrNotFound) {
			return StepOutcome{}, apperrors.ErrNotRegistered
		}
		return StepOutcome{}, apperrors.NewDatabaseError(err)
	}

	if outcome.Complete {
		logger.Info("Cat registration completed", "chat_id", chatID)
	}
	return outcome, nil
}

// parseAmount applies the shared numeric grammar of the validating steps:
// integer or decimal text representing a value greater than zero.
func parseAmount(input string) (int, error) {
	value, numeric := utils.ParsePositiveAmount(input)
	if !numeric {
		return 0, apperrors.ErrNotNumeric
	}
	if value < 1 {
		return 0, apperrors.ErrNotPositive
	}
	return value, nil
}
