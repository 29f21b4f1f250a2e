package adapter

import "context"

// InlineButton is one button of an inline keyboard. Data carries the callback
// payload; URL buttons open a link instead.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

// TelegramBotAdapter is the port for outbound Telegram calls. Delivery is
// best-effort: callers log the error at most and never retry.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// AnswerCallback acknowledges a button press so the client stops showing
	// the loading spinner. Independent of routing; never gates it.
	AnswerCallback(ctx context.Context, callbackID string) error
}
