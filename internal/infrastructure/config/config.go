package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SQLitePath string `env:"SQLITE_PATH, default=tracker.db"`

	Redis    RedisConfig
	SMTP     SMTPConfig
	Reminder ReminderConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host      string `env:"SMTP_HOST"`
	Port      int    `env:"SMTP_PORT, default=587"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromName  string `env:"SMTP_FROM_NAME,  default=Daily Tracker Admin"`
	FromEmail string `env:"SMTP_FROM_EMAIL"`
	UseTLS    bool   `env:"SMTP_TLS, default=false"`
}

type ReminderConfig struct {
	// Schedule is a cron expression; the default fires on weekdays at 16:55.
	Schedule string `env:"REMINDER_SCHEDULE, default=55 16 * * MON-FRI"`
	// CC receives a copy of every reminder, alongside the user's cluster lead.
	CC string `env:"REMINDER_CC"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
