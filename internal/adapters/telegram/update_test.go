package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivero/notemail/internal/domain"
)

func userMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 42},
		Text: text,
	}
}

func commandMessage(cmd string) *tgbotapi.Message {
	msg := userMessage("/" + cmd)
	msg.Entities = []tgbotapi.MessageEntity{{
		Type:   "bot_command",
		Offset: 0,
		Length: len(cmd) + 1,
	}}
	return msg
}

func TestTextUpdateBecomesTextReceived(t *testing.T) {
	ev, ok := eventFromUpdate(tgbotapi.Update{Message: userMessage("hello")})

	require.True(t, ok)
	assert.Equal(t, domain.TextReceived{Principal: 42, Text: "hello"}, ev)
}

func TestCallbackUpdateBecomesButtonPressed(t *testing.T) {
	ev, ok := eventFromUpdate(tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			From: &tgbotapi.User{ID: 42},
			Data: "select-category:task",
		},
	})

	require.True(t, ok)
	pressed, isButton := ev.(domain.ButtonPressed)
	require.True(t, isButton)
	assert.Equal(t, domain.UserID(42), pressed.Principal)

	cat, ok := domain.CategoryFromOption(pressed.Option)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryTask, cat)
}

func TestCommandsMapToCoreNames(t *testing.T) {
	cases := map[string]string{
		"start":      domain.CommandShowStart,
		"startemail": domain.CommandBegin,
		"stopemail":  domain.CommandStop,
		"help":       "help", // unknown commands pass through for rejection
	}

	for cmd, want := range cases {
		ev, ok := eventFromUpdate(tgbotapi.Update{Message: commandMessage(cmd)})

		require.True(t, ok, "command %s dropped", cmd)
		received, isCmd := ev.(domain.CommandReceived)
		require.True(t, isCmd)
		assert.Equal(t, want, received.Name)
	}
}

func TestPhotoUpdatePicksTheLargestSize(t *testing.T) {
	msg := userMessage("")
	msg.Photo = []tgbotapi.PhotoSize{
		{FileID: "thumb", Width: 90},
		{FileID: "medium", Width: 320},
		{FileID: "full", Width: 1280},
	}

	ev, ok := eventFromUpdate(tgbotapi.Update{Message: msg})

	require.True(t, ok)
	img, isImg := ev.(domain.ImageReceived)
	require.True(t, isImg)
	assert.Equal(t, "full", img.SourceID)
	assert.Nil(t, img.Data, "payload is downloaded later, not during mapping")
}

func TestIrrelevantUpdatesAreDropped(t *testing.T) {
	for name, upd := range map[string]tgbotapi.Update{
		"empty":          {},
		"no sender":      {Message: &tgbotapi.Message{Text: "x"}},
		"no content": {Message: &tgbotapi.Message{From: &tgbotapi.User{ID: 42}}},
	} {
		_, ok := eventFromUpdate(upd)
		assert.False(t, ok, "update %q should be ignored", name)
	}
}
