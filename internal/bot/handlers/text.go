package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
)

// TextHandler feeds free text into the registration flow. It only runs while
// the user has an active flow.
type TextHandler struct {
	responder responder.Responder
	deps      Dependencies
}

// NewTextHandler creates a new text handler
func NewTextHandler(r responder.Responder, deps Dependencies) *TextHandler {
	return &TextHandler{
		responder: r,
		deps:      deps,
	}
}

// Handle advances the flow by one step. Validation failures re-prompt
// without advancing.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	outcome, err := h.deps.RegistrationSvc.Advance(ctx, message.Chat.ID, message.Text)
	if err != nil {
		if text, ok := validationReply(err); ok {
			return h.responder.Send(message.Chat.ID, text)
		}
		return err
	}

	if outcome.Complete {
		return h.responder.Send(message.Chat.ID, "Kitty is created!")
	}
	return h.responder.Send(message.Chat.ID, promptFor(outcome.State))
}

// promptFor maps a flow state to the question asked for it.
func promptFor(state domain.FlowState) string {
	switch state {
	case domain.FlowAwaitingName:
		return "Type your kitty name:"
	case domain.FlowAwaitingGrams:
		return "How many grams of food per day does a cat need?"
	case domain.FlowAwaitingFeeds:
		return "How many times a day do you want to feed them?"
	default:
		return "Kitty is created!"
	}
}

// validationReply maps a validation error to its user-facing reply.
func validationReply(err error) (string, bool) {
	switch {
	case errors.Is(err, apperrors.ErrNotNumeric):
		return "You input not numbers! Try again.", true
	case errors.Is(err, apperrors.ErrNotPositive):
		return "Do you want your kitty to die?", true
	case errors.Is(err, apperrors.ErrEmptyName):
		return "Type your kitty name:", true
	}
	return "", false
}
