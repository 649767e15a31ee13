package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE"`
	Port       int  `env:"PORT" envDefault:"8080"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
	RedisURL       string `env:"REDIS_URL,required"`

	RabbitmqURL         string `env:"RABBITMQ_URL,required"`
	RabbitmqDigestQueue string `env:"RABBITMQ_DIGEST_QUEUE" envDefault:"birthday-digest-ready"`

	TelegramToken          string        `env:"TELEGRAM_TOKEN,required"`
	TelegramURLSecret      string        `env:"TELEGRAM_URL_SECRET,required"`
	TelegramRequestTimeout time.Duration `env:"TELEGRAM_REQUEST_TIMEOUT" envDefault:"5s"`
	TelegramBaseURLRaw     string        `env:"TELEGRAM_BASE_URL" envDefault:"https://api.telegram.org"`
	TelegramBaseURL        url.URL       `env:"-"`

	// BaseURL is the public address of this service, used for webhook
	// registration.
	BaseURLRaw string  `env:"BASE_URL" envDefault:"http://localhost:8080"`
	BaseURL    url.URL `env:"-"`

	// MaintainerChatID gets verbose error replies; zero disables that.
	MaintainerChatID int64 `env:"MAINTAINER_CHAT_ID"`

	ReminderHour   int `env:"REMINDER_HOUR" envDefault:"6"`
	ReminderMinute int `env:"REMINDER_MINUTE" envDefault:"45"`

	ChatRateLimitPerMinute uint16 `env:"CHAT_RATE_LIMIT_PER_MINUTE" envDefault:"20"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	telegramBaseURL, err := url.Parse(cfg.TelegramBaseURLRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_BASE_URL value: %w", err)
	}
	cfg.TelegramBaseURL = *telegramBaseURL

	baseURL, err := url.Parse(cfg.BaseURLRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid BASE_URL value: %w", err)
	}
	cfg.BaseURL = *baseURL

	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		return nil, fmt.Errorf("REMINDER_HOUR must be within [0, 23]")
	}
	if cfg.ReminderMinute < 0 || cfg.ReminderMinute > 59 {
		return nil, fmt.Errorf("REMINDER_MINUTE must be within [0, 59]")
	}

	return cfg, nil
}
