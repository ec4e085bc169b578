package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
)

// UpdateHandler is the single entry point for inbound events. It classifies
// each update and routes it to the command, flow or callback handler.
type UpdateHandler struct {
	responder       responder.Responder
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(r responder.Responder, deps Dependencies) *UpdateHandler {
	return &UpdateHandler{
		responder:       r,
		deps:            deps,
		callbackHandler: NewCallbackHandler(r, deps),
		commandHandler:  NewCommandHandler(r, deps),
		textHandler:     NewTextHandler(r, deps),
	}
}

// Handle processes one telegram update to completion.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		return h.handleMessage(ctx, update.Message)
	}
	return nil
}

func (h *UpdateHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	user, err := h.deps.UserService.GetByChatID(ctx, message.Chat.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotRegistered) {
		return err
	}

	// In-flow text is always flow input, never a command.
	if user != nil && user.ActiveFlow.Active() {
		return h.textHandler.Handle(ctx, message, user)
	}

	return h.commandHandler.Handle(ctx, message, user)
}
