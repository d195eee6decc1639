package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mrivero/notemail/internal/domain"
)

// eventFromUpdate maps a raw Telegram update onto a domain event. Image
// events come back with their SourceID set and an empty payload; the
// caller downloads the bytes. The second return is false for updates the
// bot does not care about (edits, stickers, channel posts, ...).
func eventFromUpdate(upd tgbotapi.Update) (domain.Event, bool) {
	if q := upd.CallbackQuery; q != nil && q.From != nil {
		return domain.ButtonPressed{
			Principal: domain.UserID(q.From.ID),
			Option:    domain.OptionID(q.Data),
		}, true
	}

	msg := upd.Message
	if msg == nil || msg.From == nil {
		return nil, false
	}
	from := domain.UserID(msg.From.ID)

	if msg.IsCommand() {
		return domain.CommandReceived{Principal: from, Name: commandName(msg.Command())}, true
	}

	if len(msg.Photo) > 0 {
		// Telegram sends every resolution; the last entry is the largest.
		largest := msg.Photo[len(msg.Photo)-1]
		return domain.ImageReceived{
			Principal: from,
			SourceID:  largest.FileID,
		}, true
	}

	if msg.Text != "" {
		return domain.TextReceived{Principal: from, Text: msg.Text}, true
	}

	return nil, false
}

// commandName maps Telegram slash commands to the core command names.
// Unknown commands pass through untranslated; the core answers them with
// a guidance notice rather than silence.
func commandName(cmd string) string {
	switch cmd {
	case "start":
		return domain.CommandShowStart
	case "startemail":
		return domain.CommandBegin
	case "stopemail":
		return domain.CommandStop
	default:
		return cmd
	}
}
