package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Request is the narrow view of an incoming chat message the handlers
// work against. Keeping the transport behind it lets the command logic
// be tested without a live bot API.
type Request interface {
	// Author is the sender's username without the "@", empty when the
	// account has none.
	Author() string
	// Text is the full message text.
	Text() string
	// Args is the raw argument tail after the command word, spaces
	// preserved.
	Args() string
	// Reply sends text back to the originating chat.
	Reply(text string) error
}

type tgRequest struct {
	api *tgbotapi.BotAPI
	msg *tgbotapi.Message
}

func newTGRequest(api *tgbotapi.BotAPI, msg *tgbotapi.Message) *tgRequest {
	return &tgRequest{api: api, msg: msg}
}

func (r *tgRequest) Author() string {
	if r.msg.From == nil {
		return ""
	}
	return r.msg.From.UserName
}

func (r *tgRequest) Text() string { return r.msg.Text }

func (r *tgRequest) Args() string { return r.msg.CommandArguments() }

func (r *tgRequest) Reply(text string) error {
	_, err := r.api.Send(tgbotapi.NewMessage(r.msg.Chat.ID, text))
	return err
}
