package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/spending_bot/internal/flow"
	"github.com/ivanoskov/spending_bot/internal/model"
)

// sendReply delivers a flow reply with the keyboard the engine asked for.
func (b *Bot) sendReply(chatID int64, reply flow.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	switch reply.Keyboard {
	case flow.KeyboardRemove:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	case flow.KeyboardCategories:
		msg.ReplyMarkup = b.getCategoriesKeyboard()
	case flow.KeyboardConfirm:
		msg.ReplyMarkup = b.getConfirmKeyboard()
	}
	b.send(msg)
}

func (b *Bot) getCategoriesKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(model.DefaultCategories))
	for _, category := range model.DefaultCategories {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(category)))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	return keyboard
}

func (b *Bot) getConfirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("yes"),
			tgbotapi.NewKeyboardButton("no"),
		),
	)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	return keyboard
}

func (b *Bot) getPeriodsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Week", "stats_week"),
			tgbotapi.NewInlineKeyboardButtonData("Month", "stats_month"),
			tgbotapi.NewInlineKeyboardButtonData("Year", "stats_year"),
		),
	)
}
