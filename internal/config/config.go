package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings, populated from the environment
type Config struct {
	ListenAddr     string `env:"KURIMU_LISTEN_ADDR" envDefault:":8080"`
	DictionaryPath string `env:"KURIMU_DICTIONARY_PATH" envDefault:"data/words.txt"`

	// Turn timing
	TurnBase      time.Duration `env:"KURIMU_TURN_BASE" envDefault:"30s"`
	TurnFloor     time.Duration `env:"KURIMU_TURN_FLOOR" envDefault:"8s"`
	TurnDecrement time.Duration `env:"KURIMU_TURN_DECREMENT" envDefault:"2s"`

	// Rules
	ForfeitPenalty int `env:"KURIMU_FORFEIT_PENALTY" envDefault:"5"`
	WordReward     int `env:"KURIMU_WORD_REWARD" envDefault:"1"`
	WinReward      int `env:"KURIMU_WIN_REWARD" envDefault:"10"`
	HintWords      int `env:"KURIMU_HINT_WORDS" envDefault:"3"`

	// Room lifecycle
	IdleTTL       time.Duration `env:"KURIMU_IDLE_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"KURIMU_SWEEP_INTERVAL" envDefault:"5m"`

	// Storage backend: memory, redis or sqlite
	StorageKind string `env:"KURIMU_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"KURIMU_REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath  string `env:"KURIMU_SQLITE_PATH" envDefault:"kurimu.db"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	if c.TurnFloor <= 0 {
		return fmt.Errorf("turn floor must be positive, got %s", c.TurnFloor)
	}
	if c.TurnBase < c.TurnFloor {
		return fmt.Errorf("turn base %s is below floor %s", c.TurnBase, c.TurnFloor)
	}
	if c.TurnDecrement < 0 {
		return fmt.Errorf("turn decrement must not be negative, got %s", c.TurnDecrement)
	}
	switch c.StorageKind {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("unknown storage kind %q", c.StorageKind)
	}
	return nil
}
