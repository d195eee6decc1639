package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Mode selects how updates reach the bot.
type Mode string

const (
	ModePolling Mode = "polling"
	ModeWebhook Mode = "webhook"
)

// Config holds everything the process needs at startup. Missing mail or
// chat credentials are fatal here, before any event is accepted.
type Config struct {
	TelegramToken    string
	AuthorizedUserID int64

	EmailAddress  string
	EmailPassword string
	ToEmail       string
	SMTPServer    string
	SMTPPort      int

	Mode       Mode
	WebhookURL string
	Port       string

	IdleShutdown time.Duration
	WakeURL      string

	UseMockMailer bool
}

// Load reads configuration from the environment, with an optional .env
// file for local runs. Defaults are applied before validation.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("notemail_mode", string(ModePolling))
	v.SetDefault("port", "8080")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("idle_shutdown_minutes", 30)
	v.SetDefault("use_mock_mailer", false)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			// A missing .env is fine; the environment still applies.
			var pathErr *os.PathError
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s: %w", envFile, err)
			}
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		TelegramToken:    v.GetString("telegram_bot_token"),
		AuthorizedUserID: v.GetInt64("authorized_user_id"),

		EmailAddress:  v.GetString("email_address"),
		EmailPassword: v.GetString("email_password"),
		ToEmail:       v.GetString("to_email"),
		SMTPServer:    v.GetString("smtp_server"),
		SMTPPort:      v.GetInt("smtp_port"),

		Mode:       Mode(v.GetString("notemail_mode")),
		WebhookURL: v.GetString("webhook_url"),
		Port:       v.GetString("port"),

		IdleShutdown: time.Duration(v.GetInt("idle_shutdown_minutes")) * time.Minute,
		WakeURL:      v.GetString("render_url"),

		UseMockMailer: v.GetBool("use_mock_mailer"),
	}

	if cfg.ToEmail == "" {
		cfg.ToEmail = cfg.EmailAddress
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.AuthorizedUserID == 0 {
		return errors.New("AUTHORIZED_USER_ID is required")
	}

	if !c.UseMockMailer {
		switch {
		case c.EmailAddress == "":
			return errors.New("EMAIL_ADDRESS is required")
		case c.EmailPassword == "":
			return errors.New("EMAIL_PASSWORD is required")
		case c.SMTPServer == "":
			return errors.New("SMTP_SERVER is required")
		case c.SMTPPort == 0:
			return errors.New("SMTP_PORT is required")
		}
	}

	switch c.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.WebhookURL == "" {
			return errors.New("WEBHOOK_URL is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown NOTEMAIL_MODE %q", c.Mode)
	}

	return nil
}
