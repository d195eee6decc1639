package telegram

import (
	"encoding/json"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

// WebhookServer receives Telegram updates over HTTP instead of long
// polling. The update path embeds the bot token, which is how Telegram
// webhook deployments keep strangers from posting fake updates.
type WebhookServer struct {
	gateway *Gateway
	handler domain.EventHandler
}

func NewWebhookServer(token string, gateway *Gateway, handler domain.EventHandler) http.Handler {
	s := &WebhookServer{gateway: gateway, handler: handler}

	mux := http.NewServeMux()

	// / → liveness probe (also what the wake-up link hits)
	mux.HandleFunc("/", s.handleHealth)

	// /webhook/{token} → POST: one Telegram update per request
	mux.HandleFunc("/webhook/"+token, s.handleUpdate)

	return chainMiddlewares(mux, withLogging)
}

func (s *WebhookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("🤖 Bot is alive!"))
}

func (s *WebhookServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var upd tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		observability.Logger().Error("invalid webhook payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.gateway.Process(r.Context(), s.handler, upd)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// withLogging wraps a handler and logs every request.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		observability.Logger().Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

// chainMiddlewares applies multiple middlewares in order.
func chainMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
