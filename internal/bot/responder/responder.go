package responder

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
)

// Responder is the outbound boundary of the bot: plain sends, sends with an
// inline keyboard, and in-place edits used to acknowledge button presses.
// Delivery failures surface as transport errors and never undo a domain
// mutation that already committed.
type Responder interface {
	Send(chatID int64, text string) error
	SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	Edit(chatID int64, messageID int, text string) error
	AckCallback(callbackID string) error
}

// Telegram delivers responses through the Bot API.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram creates a telegram-backed responder.
func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

// Send delivers a plain text message.
func (t *Telegram) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}

// SendKeyboard delivers a text message with an inline keyboard.
func (t *Telegram) SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := t.api.Send(msg); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}

// Edit replaces the text of a previously sent message.
func (t *Telegram) Edit(chatID int64, messageID int, text string) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := t.api.Send(msg); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}

// AckCallback answers a callback query to clear the client's loading state.
func (t *Telegram) AckCallback(callbackID string) error {
	callback := tgbotapi.NewCallback(callbackID, "")
	if _, err := t.api.Request(callback); err != nil {
		return apperrors.NewTransportError(err)
	}
	return nil
}
