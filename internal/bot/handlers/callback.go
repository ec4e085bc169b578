package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/keyboards"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/menus"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
	"github.com/Kabachel/FeedingKittiesBot/internal/services"
)

const staleCatText = "This kitty is no longer available."

// CallbackHandler handles button-press callbacks. Cat ids arriving in the
// payload are client supplied and re-validated against ownership before any
// action.
type CallbackHandler struct {
	responder responder.Responder
	deps      Dependencies
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(r responder.Responder, deps Dependencies) *CallbackHandler {
	return &CallbackHandler{
		responder: r,
		deps:      deps,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	// Answer the callback query first to clear the loading state.
	if err := h.responder.AckCallback(query.ID); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	user, err := h.deps.UserService.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotRegistered) {
			return h.responder.Send(chatID, notRegisteredText)
		}
		return err
	}

	switch {
	case query.Data == keyboards.CallbackConfirmDelete:
		return h.handleConfirmDelete(ctx, chatID, messageID)
	case query.Data == keyboards.CallbackCancelDelete:
		return h.responder.Edit(chatID, messageID, "Hooray! You stay with us!")
	case query.Data == keyboards.CallbackFeed:
		return h.handleFeed(ctx, chatID, messageID, user)
	case query.Data == keyboards.CallbackDeleteCat:
		return h.handleDeleteCat(ctx, chatID, messageID, user)
	case query.Data == keyboards.CallbackBack:
		return h.sendChooser(ctx, chatID)
	case strings.HasPrefix(query.Data, keyboards.CatPrefix):
		return h.handleChooseCat(ctx, chatID, messageID, query.Data)
	default:
		logger.Warn("Unrecognized callback token", "data", query.Data, "chat_id", chatID)
		return nil
	}
}

// handleConfirmDelete cascade-deletes the user and their cats.
func (h *CallbackHandler) handleConfirmDelete(ctx context.Context, chatID int64, messageID int) error {
	if err := h.deps.UserService.DeleteUserData(ctx, chatID); err != nil {
		return err
	}
	return h.responder.Edit(chatID, messageID, "Your data is cleared")
}

// handleChooseCat validates ownership of the cat named in the payload and
// selects it.
func (h *CallbackHandler) handleChooseCat(ctx context.Context, chatID int64, messageID int, data string) error {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, keyboards.CatPrefix), 10, 32)
	if err != nil {
		logger.Warn("Malformed cat callback payload", "data", data, "chat_id", chatID)
		return h.responder.Edit(chatID, messageID, staleCatText)
	}

	cat, err := h.deps.FeedingSvc.ChooseCat(ctx, chatID, uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCat) {
			return h.responder.Edit(chatID, messageID, staleCatText)
		}
		return err
	}

	if err := h.responder.Edit(chatID, messageID, "You choose "+cat.Name); err != nil {
		return err
	}
	return menus.SendCatActions(h.responder, chatID)
}

// handleFeed records one feeding of the selected cat.
func (h *CallbackHandler) handleFeed(ctx context.Context, chatID int64, messageID int, user *domain.User) error {
	if user.SelectedCatID == nil {
		return h.responder.Edit(chatID, messageID, staleCatText)
	}

	result, err := h.deps.FeedingSvc.Feed(ctx, chatID, *user.SelectedCatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCat) {
			return h.responder.Edit(chatID, messageID, staleCatText)
		}
		return err
	}

	if err := h.responder.Edit(chatID, messageID, feedReply(result)); err != nil {
		return err
	}
	return h.sendChooser(ctx, chatID)
}

// handleDeleteCat deletes the selected cat.
func (h *CallbackHandler) handleDeleteCat(ctx context.Context, chatID int64, messageID int, user *domain.User) error {
	if user.SelectedCatID == nil {
		return h.responder.Edit(chatID, messageID, staleCatText)
	}

	if err := h.deps.FeedingSvc.DeleteCat(ctx, chatID, *user.SelectedCatID); err != nil {
		if errors.Is(err, apperrors.ErrUnknownCat) {
			return h.responder.Edit(chatID, messageID, staleCatText)
		}
		return err
	}
	return h.responder.Edit(chatID, messageID, "Your kitty deleted.")
}

func (h *CallbackHandler) sendChooser(ctx context.Context, chatID int64) error {
	cats, err := h.deps.FeedingSvc.ListCats(ctx, chatID)
	if err != nil {
		return err
	}
	return menus.SendCatChooser(h.responder, chatID, cats)
}

// feedReply picks the message variant for a feed outcome.
func feedReply(result services.FeedResult) string {
	switch {
	case !result.Fed:
		return "It's enough for the cat to eat today, come back tomorrow."
	case result.Full:
		return "Hooray, the cat is fed, enough for today, come back tomorrow!"
	default:
		return fmt.Sprintf("Left to feed: %d times.\n%d/%d",
			result.Remaining, result.Cat.FeedsToday, result.Cat.FeedsPerDay)
	}
}
