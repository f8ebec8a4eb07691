package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wordduel/internal/keyboard"
	"wordduel/internal/models"
)

// inlineMarkup converts a keyboard grid into Telegram's inline keyboard
func inlineMarkup(grid keyboard.Grid) *tgbotapi.InlineKeyboardMarkup {
	if grid == nil {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(grid))
	for _, row := range grid {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, cell := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(cell.Label, cell.Data))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func playerFrom(u *tgbotapi.User) models.Player {
	if u == nil {
		return models.Player{}
	}
	return models.Player{ID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}
