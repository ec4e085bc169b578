package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot/menus"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
)

const helpText = `This bot is created for feeding kitties.

You can execute commands from main menu on the left, or by start typing a command:

/start - to see a welcome message
/mydata - to see data stored about yourself
/deletedata - to delete all stored data about yourself
/newcat - to create new kitty
/choosecat - to choose kitty for feed or delete
/help - to see this message again`

const notRegisteredText = "Dude, you're not registered!\nEnter /start to register."

// CommandHandler handles one-shot bot commands. user is nil when the chat
// has not registered yet.
type CommandHandler struct {
	responder responder.Responder
	deps      Dependencies
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(r responder.Responder, deps Dependencies) *CommandHandler {
	return &CommandHandler{
		responder: r,
		deps:      deps,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	switch message.Command() {
	case "start":
		return h.handleStart(ctx, message)
	case "help":
		logger.Info("/help entered", "chat_id", message.Chat.ID)
		return h.responder.Send(message.Chat.ID, helpText)
	case "mydata":
		if user == nil {
			return h.responder.Send(message.Chat.ID, notRegisteredText)
		}
		return h.handleMyData(ctx, message.Chat.ID, user)
	case "deletedata":
		if user == nil {
			return h.responder.Send(message.Chat.ID, notRegisteredText)
		}
		return menus.SendDeleteConfirmation(h.responder, message.Chat.ID)
	case "newcat":
		if user == nil {
			return h.responder.Send(message.Chat.ID, notRegisteredText)
		}
		return h.handleNewCat(ctx, message.Chat.ID)
	case "choosecat":
		if user == nil {
			return h.responder.Send(message.Chat.ID, notRegisteredText)
		}
		return h.handleChooseCat(ctx, message.Chat.ID)
	default:
		logger.Info("Unrecognized command entered", "input", message.Text, "chat_id", message.Chat.ID)
		return h.responder.Send(message.Chat.ID, "Sorry, this command unrecognized for me.")
	}
}

// handleStart registers the user and always re-sends the welcome text.
func (h *CommandHandler) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	from := message.From
	var firstName, lastName, username string
	if from != nil {
		firstName = from.FirstName
		lastName = from.LastName
		username = from.UserName
	}

	_, _, err := h.deps.UserService.RegisterUser(ctx, message.Chat.ID, firstName, lastName, username)
	if err != nil {
		return err
	}

	answer := fmt.Sprintf("Hello %s, glad to see you! 👋\nTime to feed the cats. 🐈", firstName)
	return h.responder.Send(message.Chat.ID, answer)
}

// handleMyData shows the stored profile and the kitty list.
func (h *CommandHandler) handleMyData(ctx context.Context, chatID int64, user *domain.User) error {
	cats, err := h.deps.FeedingSvc.ListCats(ctx, chatID)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your data:\nFirst name: %s\nLast name: %s\nRegistration time: %s",
		user.FirstName, user.LastName, user.RegisteredAt.Format("2006-01-02 15:04:05"))

	if len(cats) > 0 {
		b.WriteString("\nKitties:\n")
		for _, cat := range cats {
			fmt.Fprintf(&b, "Name: %s; Grams per day: %d; Feed per day: %d\n",
				cat.Name, cat.GramsPerDay, cat.FeedsPerDay)
		}
	}

	return h.responder.Send(chatID, b.String())
}

// handleNewCat starts (or resumes) the registration flow.
func (h *CommandHandler) handleNewCat(ctx context.Context, chatID int64) error {
	outcome, err := h.deps.RegistrationSvc.Start(ctx, chatID)
	if err != nil {
		return err
	}
	return h.responder.Send(chatID, promptFor(outcome.State))
}

// handleChooseCat lists the user's cats as selectable buttons.
func (h *CommandHandler) handleChooseCat(ctx context.Context, chatID int64) error {
	cats, err := h.deps.FeedingSvc.ListCats(ctx, chatID)
	if err != nil {
		return err
	}
	return menus.SendCatChooser(h.responder, chatID, cats)
}
