package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-course-bot/internal/domain/model"
)

// FromUpdate maps a raw Bot API update onto the subset the router consumes.
// Fields the bot does not care about (photos, stickers, inline queries) are
// dropped here; shapes with no usable chat id or payload come out empty and
// classify as no-ops downstream.
func FromUpdate(up *tgbotapi.Update) model.Update {
	out := model.Update{ID: up.UpdateID}

	if up.EditedMessage != nil {
		out.Edited = true
		return out
	}

	if cb := up.CallbackQuery; cb != nil {
		q := &model.CallbackQuery{ID: cb.ID, Data: cb.Data}
		if cb.Message != nil && cb.Message.Chat != nil {
			q.ChatID = cb.Message.Chat.ID
		}
		out.Callback = q
		return out
	}

	if msg := up.Message; msg != nil && msg.Chat != nil {
		out.Message = &model.IncomingMessage{
			ChatID: msg.Chat.ID,
			Text:   msg.Text,
		}
	}

	return out
}
