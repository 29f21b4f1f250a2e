package model

// Update is the subset of an inbound Telegram update the bot consumes.
// It is built once at the transport edge; everything past the router deals
// only in these shapes.
type Update struct {
	ID       int
	Edited   bool
	Message  *IncomingMessage
	Callback *CallbackQuery
}

// IncomingMessage is a plain text message from a chat.
type IncomingMessage struct {
	ChatID int64
	Text   string
}

// CallbackQuery is a button press carrying an opaque payload.
type CallbackQuery struct {
	ID     string
	ChatID int64
	Data   string
}
