// Package telegram adapts the Telegram Bot API to the chat gateway port:
// inbound updates become domain events, outbound views become messages
// and keyboards.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

// Gateway implements domain.ChatGateway for a single owner chat. It keeps
// track of the last menu message it produced so the core can edit it in
// place, the way the confirmation flow expects.
type Gateway struct {
	bot   *tgbotapi.BotAPI
	owner domain.UserID

	mu         sync.Mutex
	lastChatID int64
	lastMsgID  int
}

func NewGateway(token string, owner domain.UserID) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &Gateway{bot: bot, owner: owner}, nil
}

func (g *Gateway) SendText(_ context.Context, to domain.UserID, text string) error {
	msg := tgbotapi.NewMessage(int64(to), text)
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("sending text: %w", err)
	}
	return nil
}

func (g *Gateway) SendMenu(_ context.Context, to domain.UserID, prompt string, options []domain.MenuOption) error {
	msg := tgbotapi.NewMessage(int64(to), prompt)
	msg.ReplyMarkup = markupFor(options)

	sent, err := g.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sending menu: %w", err)
	}
	g.rememberLast(sent.Chat.ID, sent.MessageID)
	return nil
}

func (g *Gateway) EditLastMessage(ctx context.Context, text string, options []domain.MenuOption) error {
	g.mu.Lock()
	chatID, msgID := g.lastChatID, g.lastMsgID
	g.mu.Unlock()

	if msgID == 0 {
		// Nothing to edit yet; degrade to a fresh message.
		if len(options) == 0 {
			return g.SendText(ctx, g.owner, text)
		}
		return g.SendMenu(ctx, g.owner, text, options)
	}

	var err error
	if len(options) == 0 {
		_, err = g.bot.Send(tgbotapi.NewEditMessageText(chatID, msgID, text))
	} else {
		markup, ok := markupFor(options).(tgbotapi.InlineKeyboardMarkup)
		if !ok {
			return g.SendMenu(ctx, g.owner, text, options)
		}
		_, err = g.bot.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, markup))
	}
	if err != nil {
		return fmt.Errorf("editing message %d: %w", msgID, err)
	}
	return nil
}

// Run long-polls for updates until ctx is canceled.
func (g *Gateway) Run(ctx context.Context, handler domain.EventHandler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := g.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			g.bot.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			g.Process(ctx, handler, upd)
		}
	}
}

// RegisterWebhook tells Telegram to deliver updates to url instead of
// long polling.
func (g *Gateway) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("building webhook config: %w", err)
	}
	if _, err := g.bot.Request(wh); err != nil {
		return fmt.Errorf("registering webhook: %w", err)
	}
	return nil
}

// Process turns one update into a domain event and hands it to the
// handler. Shared by the polling loop and the webhook server.
func (g *Gateway) Process(ctx context.Context, handler domain.EventHandler, upd tgbotapi.Update) {
	ctx = observability.WithUpdateID(ctx, upd.UpdateID)
	log := observability.LoggerFromContext(ctx)

	if q := upd.CallbackQuery; q != nil {
		// Acknowledge the button press and remember its message so the
		// core's edits land on the right bubble.
		if _, err := g.bot.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			log.Error("failed to answer callback", "error", err)
		}
		if q.Message != nil {
			g.rememberLast(q.Message.Chat.ID, q.Message.MessageID)
		}
	}

	ev, ok := eventFromUpdate(upd)
	if !ok {
		return
	}

	// Image payloads are fetched in full before the event reaches the
	// state machine, so session mutation never waits on I/O.
	if img, isImg := ev.(domain.ImageReceived); isImg {
		data, err := g.downloadFile(ctx, img.SourceID)
		if err != nil {
			log.Error("failed to download photo", "file_id", img.SourceID, "error", err)
			return
		}
		img.Data = data
		ev = img
	}

	if err := handler.HandleEvent(ctx, ev); err != nil {
		log.Error("event handling failed", "error", err)
	}
}

func (g *Gateway) rememberLast(chatID int64, msgID int) {
	g.mu.Lock()
	g.lastChatID = chatID
	g.lastMsgID = msgID
	g.mu.Unlock()
}

func (g *Gateway) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := g.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolving file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(g.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching file %s: unexpected status %s", fileID, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// markupFor picks the keyboard kind: the lone begin-composition button is
// presented as a persistent reply keyboard (its press comes back as plain
// text), everything else as inline buttons with the option id as callback
// data.
func markupFor(options []domain.MenuOption) interface{} {
	if len(options) == 1 && options[0].ID == domain.OptionBeginComposition {
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(options[0].Label)),
		)
		kb.OneTimeKeyboard = true
		kb.ResizeKeyboard = true
		return kb
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, string(opt.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
