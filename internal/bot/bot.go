package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/handlers"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	apperrors "github.com/Kabachel/FeedingKittiesBot/internal/errors"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
)

// queueSize bounds how many pending updates a single chat can have before
// new ones are dropped.
const queueSize = 32

// Bot runs the long-polling loop. Updates for one chat are handled in order
// by a dedicated worker; different chats proceed concurrently.
type Bot struct {
	api        *tgbotapi.BotAPI
	handler    *handlers.UpdateHandler
	errHandler *apperrors.Handler
	queues     sync.Map // chat id -> chan tgbotapi.Update
}

// NewBot authorizes with the Bot API and wires the handler chain.
func NewBot(token string, deps handlers.Dependencies) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Info("Bot authorized", "account", api.Self.UserName)

	if err := setCommandMenu(api); err != nil {
		logger.Error("Failed to set bot command list", "error", err)
	}

	return &Bot{
		api:        api,
		handler:    handlers.NewUpdateHandler(responder.NewTelegram(api), deps),
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}, nil
}

// Start consumes updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			b.dispatch(ctx, update)
		}
	}
}

// dispatch hands the update to the chat's worker, creating one on first
// contact. Enqueueing from the single receive loop keeps per-chat order.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	v, ok := b.queues.Load(chatID)
	if !ok {
		ch := make(chan tgbotapi.Update, queueSize)
		actual, loaded := b.queues.LoadOrStore(chatID, ch)
		v = actual
		if !loaded {
			go b.chatWorker(ctx, actual.(chan tgbotapi.Update))
		}
	}

	select {
	case v.(chan tgbotapi.Update) <- update:
	default:
		logger.Warn("Chat queue full, dropping update", "chat_id", chatID)
	}
}

func (b *Bot) chatWorker(ctx context.Context, ch chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-ch:
			if err := b.handler.Handle(ctx, update); err != nil {
				b.errHandler.Handle(ctx, err)
			}
		}
	}
}

func chatIDOf(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func setCommandMenu(api *tgbotapi.BotAPI) error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "get a welcome message"},
		tgbotapi.BotCommand{Command: "mydata", Description: "get your data stored"},
		tgbotapi.BotCommand{Command: "deletedata", Description: "delete my data"},
		tgbotapi.BotCommand{Command: "newcat", Description: "to create new kitty"},
		tgbotapi.BotCommand{Command: "choosecat", Description: "to choose kitty for feed or delete"},
		tgbotapi.BotCommand{Command: "help", Description: "info how to use this bot"},
	)
	_, err := api.Request(commands)
	return err
}
