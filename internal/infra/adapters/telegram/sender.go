package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-course-bot/internal/domain/ports/adapter"
	"telegram-course-bot/internal/infra/metrics"
)

var _ adapter.TelegramBotAdapter = (*Sender)(nil)

// Sender delivers outbound messages through the Bot API. Delivery is
// best-effort: errors are logged and counted, callers do not act on them.
type Sender struct {
	bot *tgbotapi.BotAPI
	log *zerolog.Logger
}

func NewSender(token string, logger *zerolog.Logger) (*Sender, error) {
	if token == "" {
		return nil, errors.New("telegram token empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Sender{bot: bot, log: logger}, nil
}

func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := s.bot.Send(msg)
	metrics.IncSend("message", err == nil)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("sendMessage failed")
	}
	return err
}

func (s *Sender) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			r = append(r, kb)
		}
		kbRows = append(kbRows, r)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	_, err := s.bot.Send(msg)
	metrics.IncSend("buttons", err == nil)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("sendMessage with keyboard failed")
	}
	return err
}

func (s *Sender) AnswerCallback(ctx context.Context, callbackID string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	metrics.IncSend("callback_ack", err == nil)
	if err != nil {
		s.log.Warn().Err(err).Str("callback_id", callbackID).Msg("answerCallbackQuery failed")
	}
	return err
}
