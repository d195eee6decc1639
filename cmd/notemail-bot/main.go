package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrivero/notemail/internal/adapters/smtp"
	"github.com/mrivero/notemail/internal/adapters/telegram"
	"github.com/mrivero/notemail/internal/app/compose"
	"github.com/mrivero/notemail/internal/app/idle"
	"github.com/mrivero/notemail/internal/config"
	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := observability.Logger()
	owner := domain.UserID(cfg.AuthorizedUserID)

	// Mail transport: mock or real SMTP (useful for dev)
	var mailer domain.MailTransport
	if cfg.UseMockMailer {
		logger.Info("using mock mailer")
		mailer = smtp.NewMockMailer()
	} else {
		logger.Info("using smtp mailer", "host", cfg.SMTPServer, "port", cfg.SMTPPort)
		mailer, err = smtp.NewMailer(smtp.Config{
			Host:     cfg.SMTPServer,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailAddress,
			Password: cfg.EmailPassword,
		})
		if err != nil {
			log.Fatalf("error initializing smtp mailer: %v", err)
		}
	}

	gateway, err := telegram.NewGateway(cfg.TelegramToken, owner)
	if err != nil {
		log.Fatalf("error initializing telegram gateway: %v", err)
	}

	svc := compose.NewService(owner, cfg.EmailAddress, cfg.ToEmail, gateway, mailer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Idle auto-shutdown is supervisory: it sits next to the core, not
	// inside it.
	supervisor := idle.New(cfg.IdleShutdown, owner, gateway, cfg.WakeURL, cancel)
	go supervisor.Run(ctx)

	switch cfg.Mode {
	case config.ModeWebhook:
		runWebhook(ctx, cfg, gateway, svc, logger)
	default:
		logger.Info("bot is running", "mode", "polling")
		if err := gateway.Run(ctx, svc); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("polling loop failed: %v", err)
		}
	}

	logger.Info("bot stopped")
}

func runWebhook(ctx context.Context, cfg *config.Config, gateway *telegram.Gateway, svc domain.EventHandler, logger *slog.Logger) {
	if err := gateway.RegisterWebhook(cfg.WebhookURL); err != nil {
		log.Fatalf("error registering webhook: %v", err)
	}

	handler := telegram.NewWebhookServer(cfg.TelegramToken, gateway, svc)
	server := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("bot is running", "mode", "webhook", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("webhook server failed: %v", err)
	}
}
