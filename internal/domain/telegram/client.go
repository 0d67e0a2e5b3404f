package telegram

import "gopkg.in/telebot.v3"

// Client sends messages to a Telegram chat. Used for operator alerts about reminder runs.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
