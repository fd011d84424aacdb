package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/game"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8080" validate:"min=1000,max=65535"`
	MaxRoomSize    int    `env:"MAX_ROOM_SIZE"    envDefault:"8"    validate:"min=2,max=64"`

	WaitingForStartDuration time.Duration `env:"WAITING_FOR_START_DURATION" envDefault:"10s" validate:"gte=0"`
	NewRoundDuration        time.Duration `env:"NEW_ROUND_DURATION"         envDefault:"20s" validate:"gte=0"`
	GameRunningDuration     time.Duration `env:"GAME_RUNNING_DURATION"      envDefault:"60s" validate:"gt=0"`
	ShowWordDuration        time.Duration `env:"SHOW_WORD_DURATION"         envDefault:"10s" validate:"gte=0"`
	PhaseTickInterval       time.Duration `env:"PHASE_TICK_INTERVAL"        envDefault:"1s"  validate:"gt=0"`

	ReconnectGracePeriod time.Duration `env:"RECONNECT_GRACE_PERIOD" envDefault:"60s" validate:"gte=0"`
	PingInterval         time.Duration `env:"PING_INTERVAL"          envDefault:"3s"  validate:"gt=0"`

	ChatRateLimit float64 `env:"CHAT_RATE_LIMIT" envDefault:"3" validate:"gte=0"`
	ChatBurst     int     `env:"CHAT_BURST"      envDefault:"5" validate:"min=1"`

	SendQueueSize int `env:"SEND_QUEUE_SIZE" envDefault:"256" validate:"min=1"`

	// WordsFile is a newline separated word list; the built-in list is
	// used when empty.
	WordsFile string `env:"WORDS_FILE"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:"," validate:"min=1"`
	LogDevelopment bool     `env:"LOG_DEVELOPMENT" envDefault:"true"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// GameSettings maps the timing knobs onto the room engine settings.
func (c *Config) GameSettings() game.Settings {
	return game.Settings{
		WaitingForStart: c.WaitingForStartDuration,
		NewRound:        c.NewRoundDuration,
		GameRunning:     c.GameRunningDuration,
		ShowWord:        c.ShowWordDuration,
		TickInterval:    c.PhaseTickInterval,
		GracePeriod:     c.ReconnectGracePeriod,
		PingInterval:    c.PingInterval,
		ChatRate:        c.ChatRateLimit,
		ChatBurst:       c.ChatBurst,
	}
}
