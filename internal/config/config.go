// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the signaling server settings. Every field can be set through
// a HUDDLE_ prefixed environment variable or a .env file.
type Config struct {
	Host     string `env:"HUDDLE_HOST"`
	Port     int    `env:"HUDDLE_PORT,default=8080" validate:"gte=1,lte=65535"`
	LogLevel string `env:"HUDDLE_LOG_LEVEL,default=info"`
	// LogFormat is "text" or "json".
	LogFormat string `env:"HUDDLE_LOG_FORMAT,default=text" validate:"oneof=text json"`

	// AllowedOrigins is a comma separated list. "*" allows any origin.
	AllowedOrigins string `env:"HUDDLE_ALLOWED_ORIGINS"`

	MaxParticipants  int   `env:"HUDDLE_MAX_PARTICIPANTS,default=100" validate:"gte=1"`
	ChatHistoryLimit int   `env:"HUDDLE_CHAT_HISTORY_LIMIT,default=500" validate:"gte=1"`
	MaxFileSize      int64 `env:"HUDDLE_MAX_FILE_SIZE,default=10485760" validate:"gte=1"`
	MaxMessageBytes  int64 `env:"HUDDLE_MAX_MESSAGE_BYTES,default=16777216" validate:"gte=1024"`
	SendBuffer       int   `env:"HUDDLE_SEND_BUFFER,default=256" validate:"gte=1"`

	SweepInterval   time.Duration `env:"HUDDLE_SWEEP_INTERVAL,default=30s" validate:"gte=1s"`
	MemoryWarnBytes int64         `env:"HUDDLE_MEMORY_WARN_BYTES,default=524288000" validate:"gte=1"`

	PingInterval    time.Duration `env:"HUDDLE_PING_INTERVAL,default=25s" validate:"gt=0,ltfield=PongWait"`
	PongWait        time.Duration `env:"HUDDLE_PONG_WAIT,default=60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"HUDDLE_SHUTDOWN_TIMEOUT,default=15s" validate:"gt=0"`
}

// DefaultAllowedOrigins applies when HUDDLE_ALLOWED_ORIGINS is unset.
const DefaultAllowedOrigins = "http://localhost:3000,http://localhost:8000"

// Load reads a .env file when one exists, then the process environment.
func Load(files ...string) (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load(files...)

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits AllowedOrigins, dropping blanks.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	return origins
}
