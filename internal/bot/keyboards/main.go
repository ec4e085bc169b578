package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
)

// Callback tokens carried in inline button payloads.
const (
	CallbackConfirmDelete = "confirm_delete"
	CallbackCancelDelete  = "cancel_delete"
	CallbackFeed          = "feed"
	CallbackDeleteCat     = "delete_cat"
	CallbackBack          = "back"

	// CatPrefix prefixes a cat id in the chooser buttons.
	CatPrefix = "cat:"
)

// ConfirmDelete creates the yes/no keyboard for the /deletedata round trip
func ConfirmDelete() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes", CallbackConfirmDelete),
			tgbotapi.NewInlineKeyboardButtonData("No", CallbackCancelDelete),
		),
	)
}

// CatChooser creates one button per cat
func CatChooser(cats []domain.Cat) tgbotapi.InlineKeyboardMarkup {
	row := tgbotapi.NewInlineKeyboardRow()
	for _, cat := range cats {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			cat.Name,
			fmt.Sprintf("%s%d", CatPrefix, cat.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// CatActions creates the action menu for a chosen cat
func CatActions() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Feed", CallbackFeed),
			tgbotapi.NewInlineKeyboardButtonData("Delete", CallbackDeleteCat),
			tgbotapi.NewInlineKeyboardButtonData("<---", CallbackBack),
		),
	)
}
