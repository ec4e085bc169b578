package menus

import (
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/keyboards"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/responder"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
)

// SendCatChooser sends the cat selection menu, or a hint when the user has
// no cats yet.
func SendCatChooser(r responder.Responder, chatID int64, cats []domain.Cat) error {
	if len(cats) == 0 {
		return r.Send(chatID, "You don't have any cat.\nEnter /newcat to create them!")
	}
	return r.SendKeyboard(chatID, "Which cat do you want to feed?", keyboards.CatChooser(cats))
}

// SendCatActions sends the feed/delete/back menu for the chosen cat.
func SendCatActions(r responder.Responder, chatID int64) error {
	return r.SendKeyboard(chatID, "What do you want to do?", keyboards.CatActions())
}

// SendDeleteConfirmation sends the /deletedata confirmation round trip.
func SendDeleteConfirmation(r responder.Responder, chatID int64) error {
	return r.SendKeyboard(chatID, "Do you really want to delete all data?", keyboards.ConfirmDelete())
}
