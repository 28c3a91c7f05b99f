package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable with SETGAME_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// ServerConfig configures the standalone websocket server.
type ServerConfig struct {
	Addr           string `env:"SETGAME_ADDR" envDefault:":8080"`
	Store          string `env:"SETGAME_STORE" envDefault:"memory"`
	RedisAddr      string `env:"SETGAME_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB        int    `env:"SETGAME_REDIS_DB" envDefault:"0"`
	SQLitePath     string `env:"SETGAME_SQLITE_PATH" envDefault:"data/rooms.db"`
	GameConfigPath string `env:"SETGAME_GAME_CONFIG"`
	LogLevel       string `env:"SETGAME_LOG_LEVEL" envDefault:"info"`
	// AllowedOrigins limits websocket upgrades to these Origin values. Empty allows any origin.
	AllowedOrigins []string `env:"SETGAME_ALLOWED_ORIGINS" envSeparator:","`
	OtelEnabled    bool     `env:"SETGAME_OTEL_ENABLED" envDefault:"true"`
	OtelEndpoint   string   `env:"SETGAME_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig parses ServerConfig from the environment and validates it.
func LoadServerConfig() (ServerConfig, error) {
	var c ServerConfig
	if err := ParseEnv(&c); err != nil {
		return ServerConfig{}, err
	}
	if err := ValidateServerConfig(c); err != nil {
		return ServerConfig{}, err
	}
	return c, nil
}

// ValidateServerConfig checks the selected store has what it needs.
func ValidateServerConfig(c ServerConfig) error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis store requires SETGAME_REDIS_ADDR")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite store requires SETGAME_SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}
